package tournament

import (
	"math"
	"sort"

	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
)

const (
	// DefaultElo is the rating every new team starts with.
	DefaultElo = 1500.0
	// EloK is the update step per series.
	EloK = 32.0
)

// ExpectedScore is the Elo win expectation of a against b.
func ExpectedScore(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/400))
}

// UpdateElo returns both ratings after a series between them.
func UpdateElo(a, b float64, aWon bool) (float64, float64) {
	score := 0.0
	if aWon {
		score = 1
	}
	delta := EloK * (score - ExpectedScore(a, b))
	return a + delta, b - delta
}

// ApplySeries updates both teams' ratings in place.
func ApplySeries(a, b *teams.Team, winnerID string) {
	if a.Elo == 0 {
		a.Elo = DefaultElo
	}
	if b.Elo == 0 {
		b.Elo = DefaultElo
	}
	a.Elo, b.Elo = UpdateElo(a.Elo, b.Elo, winnerID == a.ID)
}

// Rankings orders teams by rating and reports movement against previous.
// Teams' WorldRanking fields are updated to match.
func Rankings(all []teams.Team, previous []tournaments.RankedTeam) []tournaments.RankedTeam {
	sorted := make([]*teams.Team, len(all))
	for i := range all {
		if all[i].Elo == 0 {
			all[i].Elo = DefaultElo
		}
		sorted[i] = &all[i]
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Elo != sorted[j].Elo {
			return sorted[i].Elo > sorted[j].Elo
		}
		return sorted[i].ID < sorted[j].ID
	})

	prev := make(map[string]int, len(previous))
	for _, r := range previous {
		prev[r.TeamID] = r.Position
	}

	out := make([]tournaments.RankedTeam, len(sorted))
	for i, t := range sorted {
		pos := i + 1
		change := 0
		if p, ok := prev[t.ID]; ok {
			change = p - pos
		}
		t.WorldRanking = pos
		out[i] = tournaments.RankedTeam{
			TeamID:   t.ID,
			Position: pos,
			Points:   math.Round(t.Elo*10) / 10,
			Change:   change,
		}
	}
	return out
}
