// Package archive keeps finalized map results in a SQL database so match
// history outlives season rollover and save trimming.
package archive

import (
	"context"

	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
)

// Summary is the indexed view of an archived map.
type Summary struct {
	MatchID        string `json:"matchId"`
	Season         int    `json:"season"`
	Day            int    `json:"day"`
	TeamA          string `json:"teamA"`
	TeamB          string `json:"teamB"`
	MapID          string `json:"mapId"`
	ScoreA         int    `json:"scoreA"`
	ScoreB         int    `json:"scoreB"`
	WinnerID       string `json:"winnerId"`
	OvertimeBlocks int    `json:"overtimeBlocks"`
}

// Archive records results and answers history queries.
type Archive interface {
	Record(ctx context.Context, season int, result matches.MatchResult) error
	Get(ctx context.Context, matchID string) (matches.MatchResult, bool, error)
	ByTeam(ctx context.Context, teamID string, limit int) ([]Summary, error)
	Close() error
}

// Nop discards everything. Used when no archive driver is configured.
type Nop struct{}

func (Nop) Record(context.Context, int, matches.MatchResult) error { return nil }

func (Nop) Get(context.Context, string) (matches.MatchResult, bool, error) {
	return matches.MatchResult{}, false, nil
}

func (Nop) ByTeam(context.Context, string, int) ([]Summary, error) { return nil, nil }

func (Nop) Close() error { return nil }

func summarize(season int, r matches.MatchResult) Summary {
	return Summary{
		MatchID:        r.ID,
		Season:         season,
		Day:            r.Day,
		TeamA:          r.TeamA,
		TeamB:          r.TeamB,
		MapID:          r.MapID,
		ScoreA:         r.ScoreA,
		ScoreB:         r.ScoreB,
		WinnerID:       r.WinnerID,
		OvertimeBlocks: r.OvertimeBlocks,
	}
}
