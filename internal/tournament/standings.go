package tournament

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
)

// PointsPerWin is awarded for every league series won.
const PointsPerWin = 3

// NewLeague builds a round-robin league over the window.
func NewLeague(id, name string, teamIDs []string, startDay, endDay int, prizePool decimal.Decimal) (tournaments.Tournament, error) {
	fixtures, err := RoundRobinSchedule(id, teamIDs, startDay, endDay, 1)
	if err != nil {
		return tournaments.Tournament{}, err
	}
	t := tournaments.Tournament{
		ID:        id,
		Name:      name,
		Tier:      tournaments.TierA,
		Format:    tournaments.FormatRoundRobin,
		Stage:     tournaments.StageNotStarted,
		TeamIDs:   append([]string(nil), teamIDs...),
		PrizePool: prizePool,
		StartDay:  startDay,
		EndDay:    endDay,
		Fixtures:  fixtures,
	}
	for _, id := range teamIDs {
		t.Standings = append(t.Standings, tournaments.Standing{TeamID: id})
	}
	SortStandings(t.Standings)
	return t, nil
}

// RecordSeries stores a finished series against its fixture and updates the
// league table or bracket.
func RecordSeries(t *tournaments.Tournament, fixtureID string, s matches.Series) error {
	idx := -1
	for i, f := range t.Fixtures {
		if f.ID == fixtureID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Errorf(domain.ErrInvalidArgument, "fixture %s not in %s", fixtureID, t.ID)
	}
	f := &t.Fixtures[idx]
	if f.WinnerID != "" {
		return domain.Errorf(domain.ErrInvalidArgument, "fixture %s already played", fixtureID)
	}
	if s.WinnerID != f.TeamA && s.WinnerID != f.TeamB {
		return domain.Errorf(domain.ErrInvalidArgument, "winner %s did not play fixture %s", s.WinnerID, fixtureID)
	}
	f.WinnerID = s.WinnerID
	f.SeriesID = s.ID

	if t.Stage == tournaments.StageNotStarted {
		t.Stage = firstStage(*t)
	}

	if t.Format == tournaments.FormatRoundRobin {
		applyStanding(t.Standings, f.TeamA, s)
		applyStanding(t.Standings, f.TeamB, s)
		SortStandings(t.Standings)
		if !t.Pending(tournaments.StageGroup) {
			completeLeague(t)
		}
		return nil
	}
	Advance(t)
	return nil
}

func applyStanding(rows []tournaments.Standing, teamID string, s matches.Series) {
	for i := range rows {
		if rows[i].TeamID != teamID {
			continue
		}
		won, lost := s.RoundDiff(teamID)
		rows[i].Played++
		rows[i].RoundsFor += won
		rows[i].RoundsAgainst += lost
		if s.WinnerID == teamID {
			rows[i].Wins++
			rows[i].Points += PointsPerWin
		} else {
			rows[i].Losses++
		}
		return
	}
}

// SortStandings orders by points, round difference, rounds won, then team ID.
func SortStandings(rows []tournaments.Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.RoundDiff() != b.RoundDiff() {
			return a.RoundDiff() > b.RoundDiff()
		}
		if a.RoundsFor != b.RoundsFor {
			return a.RoundsFor > b.RoundsFor
		}
		return a.TeamID < b.TeamID
	})
}

func completeLeague(t *tournaments.Tournament) {
	t.Stage = tournaments.StageCompleted
	t.Placements = t.Placements[:0]
	for _, row := range t.Standings {
		t.Placements = append(t.Placements, row.TeamID)
	}
	if len(t.Placements) > 0 {
		t.ChampionID = t.Placements[0]
	}
	if len(t.Placements) > 1 {
		t.RunnerUpID = t.Placements[1]
	}
}

// Seeds returns the top n team IDs from the table.
func Seeds(t tournaments.Tournament, n int) []string {
	rows := append([]tournaments.Standing(nil), t.Standings...)
	SortStandings(rows)
	if n > len(rows) {
		n = len(rows)
	}
	out := make([]string, 0, n)
	for _, row := range rows[:n] {
		out = append(out, row.TeamID)
	}
	return out
}

func firstStage(t tournaments.Tournament) tournaments.Stage {
	if t.Format == tournaments.FormatRoundRobin {
		return tournaments.StageGroup
	}
	return stageForSize(len(t.TeamIDs))
}
