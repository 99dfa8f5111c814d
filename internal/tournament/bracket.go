package tournament

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
)

const (
	// MaxBracket caps the playoff field.
	MaxBracket = 8
	// PlayoffBestOf is used for every round before the final.
	PlayoffBestOf = 3
	// FinalBestOf is used for the grand final.
	FinalBestOf = 5
)

// BracketSize is the largest power of two not above min(MaxBracket, teams).
func BracketSize(teams int) int {
	if teams > MaxBracket {
		teams = MaxBracket
	}
	size := 1
	for size*2 <= teams {
		size *= 2
	}
	return size
}

func stageForSize(size int) tournaments.Stage {
	switch {
	case size >= 8:
		return tournaments.StageQuarterfinals
	case size == 4:
		return tournaments.StageSemifinals
	default:
		return tournaments.StageGrandFinal
	}
}

func nextStage(s tournaments.Stage) tournaments.Stage {
	switch s {
	case tournaments.StageQuarterfinals:
		return tournaments.StageSemifinals
	case tournaments.StageSemifinals:
		return tournaments.StageGrandFinal
	default:
		return tournaments.StageCompleted
	}
}

func stageCount(size int) int {
	n := 0
	for size > 1 {
		size /= 2
		n++
	}
	return n
}

// seedOrder returns bracket positions so that seed 1 and seed 2 can only
// meet in the final: 1v8, 4v5, 2v7, 3v6 for eight teams.
func seedOrder(size int) []int {
	order := []int{1}
	for n := 2; n <= size; n *= 2 {
		next := make([]int, 0, n)
		for _, s := range order {
			next = append(next, s, n+1-s)
		}
		order = next
	}
	return order
}

// NewPlayoffs seeds a single-elimination bracket from the ordered seeds.
func NewPlayoffs(id, name string, seeds []string, startDay, endDay int, prizePool decimal.Decimal) (tournaments.Tournament, error) {
	size := BracketSize(len(seeds))
	if size < 2 {
		return tournaments.Tournament{}, domain.Errorf(domain.ErrInvalidConfig, "playoffs need at least two teams, got %d", len(seeds))
	}
	if endDay-startDay < stageCount(size) {
		return tournaments.Tournament{}, domain.Errorf(domain.ErrInvalidConfig, "%d stages do not fit in %d days", stageCount(size), endDay-startDay)
	}
	field := append([]string(nil), seeds[:size]...)
	t := tournaments.Tournament{
		ID:        id,
		Name:      name,
		Tier:      tournaments.TierS,
		Format:    tournaments.FormatSingleElimination,
		Stage:     tournaments.StageNotStarted,
		TeamIDs:   field,
		PrizePool: prizePool,
		StartDay:  startDay,
		EndDay:    endDay,
	}

	stage := stageForSize(size)
	order := seedOrder(size)
	for slot := 0; slot < size/2; slot++ {
		t.Fixtures = append(t.Fixtures, bracketFixture(t, stage, slot, field[order[2*slot]-1], field[order[2*slot+1]-1]))
	}
	return t, nil
}

func bracketFixture(t tournaments.Tournament, stage tournaments.Stage, slot int, a, b string) tournaments.Fixture {
	bestOf := PlayoffBestOf
	if stage == tournaments.StageGrandFinal {
		bestOf = FinalBestOf
	}
	return tournaments.Fixture{
		ID:     fmt.Sprintf("%s-%s-%d", t.ID, stage, slot),
		Day:    stageDay(t, stage),
		TeamA:  a,
		TeamB:  b,
		BestOf: bestOf,
		Stage:  stage,
		Slot:   slot,
	}
}

// stageDay spreads the stages evenly over the tournament window.
func stageDay(t tournaments.Tournament, stage tournaments.Stage) int {
	total := stageCount(len(t.TeamIDs))
	first := stageForSize(len(t.TeamIDs))
	k := 0
	for s := first; s != stage && s != tournaments.StageCompleted; s = nextStage(s) {
		k++
	}
	return t.StartDay + k*(t.EndDay-t.StartDay)/total
}

// Advance moves a bracket to its next stage once every fixture of the current
// stage has a winner. It reports whether the stage changed.
func Advance(t *tournaments.Tournament) bool {
	if t.Format != tournaments.FormatSingleElimination || t.IsComplete() || t.Stage == tournaments.StageNotStarted {
		return false
	}
	if t.Pending(t.Stage) {
		return false
	}

	current := stageFixtures(*t, t.Stage)
	if t.Stage == tournaments.StageGrandFinal {
		final := current[0]
		t.ChampionID = final.WinnerID
		t.RunnerUpID = loser(final)
		t.Stage = tournaments.StageCompleted
		t.Placements = placements(*t)
		return true
	}

	next := nextStage(t.Stage)
	for i := 0; i+1 < len(current); i += 2 {
		t.Fixtures = append(t.Fixtures, bracketFixture(*t, next, i/2, current[i].WinnerID, current[i+1].WinnerID))
	}
	t.Stage = next
	return true
}

func stageFixtures(t tournaments.Tournament, stage tournaments.Stage) []tournaments.Fixture {
	out := make([]tournaments.Fixture, 0, 4)
	for _, f := range t.Fixtures {
		if f.Stage == stage {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

func loser(f tournaments.Fixture) string {
	if f.WinnerID == f.TeamA {
		return f.TeamB
	}
	return f.TeamA
}

// placements lists champion, runner-up, then losers of each earlier stage
// from latest to earliest, ordered within a stage by seed.
func placements(t tournaments.Tournament) []string {
	out := []string{t.ChampionID, t.RunnerUpID}
	seed := make(map[string]int, len(t.TeamIDs))
	for i, id := range t.TeamIDs {
		seed[id] = i
	}
	for _, stage := range []tournaments.Stage{tournaments.StageSemifinals, tournaments.StageQuarterfinals} {
		var losers []string
		for _, f := range stageFixtures(t, stage) {
			losers = append(losers, loser(f))
		}
		sort.SliceStable(losers, func(i, j int) bool { return seed[losers[i]] < seed[losers[j]] })
		out = append(out, losers...)
	}
	return out
}
