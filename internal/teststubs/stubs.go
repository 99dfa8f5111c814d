// Package teststubs holds recording test doubles shared across packages.
package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/esports-sim/internal/archive"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/providers"
)

// StubProvider is a test double for providers.Provider.
type StubProvider struct {
	Pack   providers.DataPack
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchDataPack returns the configured pack and error while tracking calls.
func (s *StubProvider) FetchDataPack(ctx context.Context) (providers.DataPack, error) {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Pack, s.Err
}

// StubArchive is an in-memory archive.Archive that records every map.
type StubArchive struct {
	mu       sync.Mutex
	Results  []matches.MatchResult
	Seasons  []int
	Err      error
	Closed   bool
	QueryErr error
}

// Record stores the result unless Err is set.
func (a *StubArchive) Record(ctx context.Context, season int, result matches.MatchResult) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.Results = append(a.Results, result)
	a.Seasons = append(a.Seasons, season)
	return nil
}

// Get finds a recorded result by id.
func (a *StubArchive) Get(ctx context.Context, matchID string) (matches.MatchResult, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.QueryErr != nil {
		return matches.MatchResult{}, false, a.QueryErr
	}
	for _, r := range a.Results {
		if r.ID == matchID {
			return r, true, nil
		}
	}
	return matches.MatchResult{}, false, nil
}

// ByTeam returns summaries for the team, most recent first.
func (a *StubArchive) ByTeam(ctx context.Context, teamID string, limit int) ([]archive.Summary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.QueryErr != nil {
		return nil, a.QueryErr
	}
	var out []archive.Summary
	for i := len(a.Results) - 1; i >= 0 && len(out) < limit; i-- {
		r := a.Results[i]
		if r.TeamA != teamID && r.TeamB != teamID {
			continue
		}
		out = append(out, archive.Summary{
			MatchID:        r.ID,
			Season:         a.Seasons[i],
			Day:            r.Day,
			TeamA:          r.TeamA,
			TeamB:          r.TeamB,
			MapID:          r.MapID,
			ScoreA:         r.ScoreA,
			ScoreB:         r.ScoreB,
			WinnerID:       r.WinnerID,
			OvertimeBlocks: r.OvertimeBlocks,
		})
	}
	return out, nil
}

// Count returns the number of recorded results.
func (a *StubArchive) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Results)
}

// Close marks the archive closed.
func (a *StubArchive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Closed = true
	return nil
}
