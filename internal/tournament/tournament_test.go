package tournament

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("t%d", i+1)
	}
	return out
}

func seriesFor(f tournaments.Fixture, winner string, winScore, loseScore int) matches.Series {
	m := matches.MatchResult{ID: f.ID + "-m1", TeamA: f.TeamA, TeamB: f.TeamB, WinnerID: winner}
	if winner == f.TeamA {
		m.ScoreA, m.ScoreB = winScore, loseScore
	} else {
		m.ScoreA, m.ScoreB = loseScore, winScore
	}
	return matches.Series{ID: "s-" + f.ID, TeamA: f.TeamA, TeamB: f.TeamB, BestOf: 1, Maps: []matches.MatchResult{m}, WinnerID: winner}
}

func TestRoundRobinEveryPairMeets(t *testing.T) {
	cases := []struct {
		teams, days int
		legs        int
	}{
		{8, 7, 1},
		{8, 14, 2},
		{8, 100, 2},
		{5, 5, 1},
		{5, 10, 2},
		{2, 1, 1},
	}
	for _, tc := range cases {
		fixtures, err := RoundRobinSchedule("lg", ids(tc.teams), 10, 10+tc.days, 1)
		if err != nil {
			t.Fatalf("%d teams %d days: %v", tc.teams, tc.days, err)
		}
		pairs := map[[2]string]int{}
		for _, f := range fixtures {
			a, b := f.TeamA, f.TeamB
			if a > b {
				a, b = b, a
			}
			pairs[[2]string{a, b}]++
			if f.Day < 10 || f.Day >= 10+tc.days {
				t.Fatalf("fixture %s outside window on day %d", f.ID, f.Day)
			}
		}
		want := tc.teams * (tc.teams - 1) / 2
		if len(pairs) != want {
			t.Fatalf("%d teams: expected %d pairings, got %d", tc.teams, want, len(pairs))
		}
		for p, n := range pairs {
			if n != tc.legs {
				t.Fatalf("%d teams: pair %v met %d times, expected %d", tc.teams, p, n, tc.legs)
			}
		}
		if err := ValidateSchedule(fixtures); err != nil {
			t.Fatalf("expected no double booking: %v", err)
		}
	}
}

func TestRoundRobinRejectsTightWindow(t *testing.T) {
	_, err := RoundRobinSchedule("lg", ids(8), 0, 6, 1)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
	_, err = RoundRobinSchedule("lg", ids(1), 0, 6, 1)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config for a single team, got %v", err)
	}
}

func TestValidateScheduleDoubleBooked(t *testing.T) {
	err := ValidateSchedule([]tournaments.Fixture{
		{ID: "a", Day: 3, TeamA: "t1", TeamB: "t2"},
		{ID: "b", Day: 3, TeamA: "t3", TeamB: "t1"},
	})
	if !errors.Is(err, domain.ErrDoubleBooked) {
		t.Fatalf("expected double booked, got %v", err)
	}
	if _, err := Merge([]tournaments.Fixture{{ID: "a", Day: 3, TeamA: "t1", TeamB: "t2"}}, []tournaments.Fixture{{ID: "b", Day: 4, TeamA: "t1", TeamB: "t3"}}); err != nil {
		t.Fatalf("expected merge on different days to pass: %v", err)
	}
}

func TestLeagueStandingsAndCompletion(t *testing.T) {
	league, err := NewLeague("lg", "League", ids(4), 0, 3, decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("league: %v", err)
	}
	if len(league.Standings) != 4 || league.Stage != tournaments.StageNotStarted {
		t.Fatalf("unexpected league %+v", league)
	}

	// t1 wins everything; otherwise the lower ID wins.
	for _, f := range append([]tournaments.Fixture(nil), league.Fixtures...) {
		winner := f.TeamA
		if f.TeamB < f.TeamA {
			winner = f.TeamB
		}
		if err := RecordSeries(&league, f.ID, seriesFor(f, winner, 13, 7)); err != nil {
			t.Fatalf("record %s: %v", f.ID, err)
		}
	}

	if !league.IsComplete() {
		t.Fatalf("expected league complete, stage %s", league.Stage)
	}
	if league.ChampionID != "t1" || league.RunnerUpID != "t2" {
		t.Fatalf("unexpected podium %s %s", league.ChampionID, league.RunnerUpID)
	}
	top := league.Standings[0]
	if top.Played != 3 || top.Wins != 3 || top.Points != 9 || top.RoundsFor != 39 || top.RoundsAgainst != 21 {
		t.Fatalf("unexpected leader row %+v", top)
	}
	last := league.Standings[3]
	if last.TeamID != "t4" || last.Points != 0 || last.Losses != 3 {
		t.Fatalf("unexpected last row %+v", last)
	}
	if got := Seeds(league, 2); len(got) != 2 || got[0] != "t1" || got[1] != "t2" {
		t.Fatalf("unexpected seeds %v", got)
	}
}

func TestRecordSeriesRejectsBadInput(t *testing.T) {
	league, _ := NewLeague("lg", "League", ids(2), 0, 2, decimal.Zero)
	f := league.Fixtures[0]
	if err := RecordSeries(&league, "missing", seriesFor(f, f.TeamA, 13, 1)); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	bad := seriesFor(f, f.TeamA, 13, 1)
	bad.WinnerID = "t9"
	if err := RecordSeries(&league, f.ID, bad); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for outsider, got %v", err)
	}
	if err := RecordSeries(&league, f.ID, seriesFor(f, f.TeamA, 13, 1)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := RecordSeries(&league, f.ID, seriesFor(f, f.TeamA, 13, 1)); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected replay rejected, got %v", err)
	}
}

func TestSortStandingsTiebreakers(t *testing.T) {
	rows := []tournaments.Standing{
		{TeamID: "d", Points: 3, RoundsFor: 20, RoundsAgainst: 10},
		{TeamID: "c", Points: 3, RoundsFor: 30, RoundsAgainst: 20},
		{TeamID: "b", Points: 3, RoundsFor: 20, RoundsAgainst: 10},
		{TeamID: "a", Points: 6},
	}
	SortStandings(rows)
	got := []string{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID, rows[3].TeamID}
	want := []string{"a", "c", "b", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v got %v", want, got)
		}
	}
}

func TestBracketSize(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 2, 4: 4, 7: 4, 8: 8, 12: 8, 20: 8}
	for teams, want := range cases {
		if got := BracketSize(teams); got != want {
			t.Fatalf("%d teams: expected %d got %d", teams, want, got)
		}
	}
}

func TestPlayoffsRunToChampion(t *testing.T) {
	seeds := ids(10)
	p, err := NewPlayoffs("po", "Playoffs", seeds, 200, 230, decimal.NewFromInt(800))
	if err != nil {
		t.Fatalf("playoffs: %v", err)
	}
	if len(p.TeamIDs) != 8 || len(p.Fixtures) != 4 {
		t.Fatalf("expected 8-team bracket, got %d teams %d fixtures", len(p.TeamIDs), len(p.Fixtures))
	}
	first := p.Fixtures[0]
	if first.TeamA != "t1" || first.TeamB != "t8" || first.Stage != tournaments.StageQuarterfinals || first.BestOf != PlayoffBestOf {
		t.Fatalf("unexpected opener %+v", first)
	}

	stages := []tournaments.Stage{tournaments.StageQuarterfinals, tournaments.StageSemifinals, tournaments.StageGrandFinal}
	for _, stage := range stages {
		pending := stageFixtures(p, stage)
		if len(pending) == 0 {
			t.Fatalf("no fixtures for %s", stage)
		}
		for i, f := range pending {
			if f.Day < 200 || f.Day >= 230 {
				t.Fatalf("fixture %s outside window", f.ID)
			}
			// Higher seed (lower number) wins.
			winner := f.TeamA
			if f.TeamB < f.TeamA && len(f.TeamB) == len(f.TeamA) {
				winner = f.TeamB
			}
			if p.Stage != stage && p.Stage != tournaments.StageNotStarted {
				t.Fatalf("expected stage %s, at %s", stage, p.Stage)
			}
			if err := RecordSeries(&p, f.ID, seriesFor(f, winner, 2, 0)); err != nil {
				t.Fatalf("record %s: %v", f.ID, err)
			}
			if i < len(pending)-1 && p.Stage != stage {
				t.Fatalf("stage advanced before %s finished", stage)
			}
		}
	}

	if !p.IsComplete() || p.ChampionID != "t1" || p.RunnerUpID != "t2" {
		t.Fatalf("unexpected result stage=%s champ=%s runner=%s", p.Stage, p.ChampionID, p.RunnerUpID)
	}
	final := stageFixtures(p, tournaments.StageGrandFinal)[0]
	if final.BestOf != FinalBestOf {
		t.Fatalf("expected best of %d final, got %d", FinalBestOf, final.BestOf)
	}
	want := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8"}
	if len(p.Placements) != len(want) {
		t.Fatalf("expected %d placements, got %v", len(want), p.Placements)
	}
	for i := range want {
		if p.Placements[i] != want[i] {
			t.Fatalf("expected placements %v got %v", want, p.Placements)
		}
	}
}

func TestPlayoffsRejectsTinyField(t *testing.T) {
	if _, err := NewPlayoffs("po", "Playoffs", ids(1), 0, 10, decimal.Zero); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestPrizeSplit(t *testing.T) {
	shares := PrizeSplit(decimal.NewFromInt(1000), 4)
	want := []int64{500, 250, 125, 125}
	total := decimal.Zero
	for i, s := range shares {
		if !s.Equal(decimal.NewFromInt(want[i])) {
			t.Fatalf("place %d: expected %d got %s", i+1, want[i], s)
		}
		total = total.Add(s)
	}
	if !total.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected shares to sum to pool, got %s", total)
	}
	if PrizeSplit(decimal.Zero, 3) != nil {
		t.Fatal("expected no shares for an empty pool")
	}

	odd := PrizeSplit(decimal.NewFromInt(100), 8)
	sum := decimal.Zero
	for _, s := range odd {
		sum = sum.Add(s)
	}
	if !sum.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected rounding remainder kept, got %s", sum)
	}
	if !odd[0].Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected champion share untouched, got %s", odd[0])
	}
	if last := odd[len(odd)-1]; !last.Equal(decimal.RequireFromString("0.76")) {
		t.Fatalf("expected last place to take the remainder 0.76, got %s", last)
	}
}

func TestPrizesOnlyOnce(t *testing.T) {
	tr := tournaments.Tournament{Stage: tournaments.StageCompleted, PrizePool: decimal.NewFromInt(100), Placements: []string{"a", "b"}}
	got := Prizes(tr)
	if len(got) != 2 || got[0].TeamID != "a" || !got[0].Amount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected payouts %+v", got)
	}
	tr.PrizesPaid = true
	if Prizes(tr) != nil {
		t.Fatal("expected no payouts once paid")
	}
}

func TestEloZeroSum(t *testing.T) {
	a, b := UpdateElo(1500, 1500, true)
	if a != 1516 || b != 1484 {
		t.Fatalf("expected 1516/1484, got %f/%f", a, b)
	}
	a, b = UpdateElo(1800, 1400, true)
	if math.Abs((a-1800)+(b-1400)) > 1e-9 {
		t.Fatal("expected zero-sum update")
	}
	if a-1800 >= 16 {
		t.Fatalf("expected favourite to gain less than an even match, got %f", a-1800)
	}
	if e := ExpectedScore(1500, 1500); e != 0.5 {
		t.Fatalf("expected 0.5, got %f", e)
	}
}

func TestRankingsTrackMovement(t *testing.T) {
	all := []teams.Team{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	first := Rankings(all, nil)
	if first[0].TeamID != "a" || first[0].Change != 0 || all[0].Elo != DefaultElo {
		t.Fatalf("unexpected initial rankings %+v", first)
	}

	ApplySeries(&all[2], &all[0], "c")
	second := Rankings(all, first)
	if second[0].TeamID != "c" || second[0].Change != 2 {
		t.Fatalf("expected c to climb two places, got %+v", second[0])
	}
	if second[2].TeamID != "a" || second[2].Change != -2 {
		t.Fatalf("expected a to drop two places, got %+v", second[2])
	}
	if all[2].WorldRanking != 1 || all[0].WorldRanking != 3 {
		t.Fatalf("expected world ranking written back, got c=%d a=%d", all[2].WorldRanking, all[0].WorldRanking)
	}
}
