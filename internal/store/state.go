package store

import (
	"sort"

	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/seasons"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
	"github.com/preston-bernstein/esports-sim/internal/domain/transfers"
)

// State is a full, ordered copy of the world.
type State struct {
	Season      seasons.Season           `json:"season"`
	Teams       []teams.Team             `json:"teams"`
	Players     []players.Player         `json:"players"`
	Contracts   []contracts.Contract     `json:"contracts"`
	Budgets     []contracts.Budget       `json:"budgets"`
	Listings    []transfers.Listing      `json:"listings"`
	Tournaments []tournaments.Tournament `json:"tournaments"`
	Series      []matches.Series         `json:"series,omitempty"`
	Rankings    []tournaments.RankedTeam `json:"rankings"`
}

// Export snapshots the whole world.
func (s *MemoryStore) Export() State {
	state := State{
		Season:      s.Season(),
		Teams:       s.Teams(),
		Players:     s.Players(),
		Contracts:   s.Contracts(),
		Listings:    s.Listings(-1),
		Tournaments: s.Tournaments(),
		Rankings:    s.Rankings(),
	}

	s.mu.RLock()
	for _, b := range s.budgets {
		state.Budgets = append(state.Budgets, b.Clone())
	}
	for _, sr := range s.series {
		state.Series = append(state.Series, copySeries(sr))
	}
	s.mu.RUnlock()

	sort.Slice(state.Budgets, func(i, j int) bool { return state.Budgets[i].TeamID < state.Budgets[j].TeamID })
	sort.Slice(state.Series, func(i, j int) bool { return state.Series[i].ID < state.Series[j].ID })
	return state
}

// Replace swaps the whole world for state.
func (s *MemoryStore) Replace(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	season := state.Season
	s.applyLocked(Batch{
		Season:      &season,
		Teams:       state.Teams,
		Players:     state.Players,
		Contracts:   state.Contracts,
		Budgets:     state.Budgets,
		Listings:    state.Listings,
		Tournaments: state.Tournaments,
		Series:      state.Series,
		Rankings:    state.Rankings,
	})
}

// ClearSeries drops stored series at season rollover.
func (s *MemoryStore) ClearSeries() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = make(map[string]matches.Series)
	s.matchIndex = make(map[string]string)
}
