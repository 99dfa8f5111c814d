package store

import (
	"sort"
	"sync"

	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/seasons"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
	"github.com/preston-bernstein/esports-sim/internal/domain/transfers"
)

// MemoryStore keeps the simulated world in memory. Entities are keyed by ID
// and every read returns a copy.
type MemoryStore struct {
	mu sync.RWMutex

	season      seasons.Season
	teams       map[string]teams.Team
	players     map[string]players.Player
	contracts   map[string]contracts.Contract
	active      map[string]string // player ID -> active contract ID
	budgets     map[string]contracts.Budget
	listings    map[string]transfers.Listing
	tournaments map[string]tournaments.Tournament
	series      map[string]matches.Series
	matchIndex  map[string]string // match ID -> series ID
	rankings    []tournaments.RankedTeam
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.reset()
	return s
}

func (s *MemoryStore) reset() {
	s.season = seasons.Season{}
	s.teams = make(map[string]teams.Team)
	s.players = make(map[string]players.Player)
	s.contracts = make(map[string]contracts.Contract)
	s.active = make(map[string]string)
	s.budgets = make(map[string]contracts.Budget)
	s.listings = make(map[string]transfers.Listing)
	s.tournaments = make(map[string]tournaments.Tournament)
	s.series = make(map[string]matches.Series)
	s.matchIndex = make(map[string]string)
	s.rankings = nil
}

// Batch groups writes that must land together. Nil slices leave their
// collection untouched.
type Batch struct {
	Season      *seasons.Season
	Teams       []teams.Team
	Players     []players.Player
	Contracts   []contracts.Contract
	Budgets     []contracts.Budget
	Listings    []transfers.Listing
	Tournaments []tournaments.Tournament
	Series      []matches.Series
	Rankings    []tournaments.RankedTeam
}

// Apply commits every write in the batch under a single lock.
func (s *MemoryStore) Apply(b Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(b)
}

func (s *MemoryStore) applyLocked(b Batch) {
	if b.Season != nil {
		s.season = *b.Season
	}
	for _, t := range b.Teams {
		s.teams[t.ID] = t.Clone()
	}
	for _, p := range b.Players {
		s.players[p.ID] = p.Clone()
	}
	for _, c := range b.Contracts {
		s.putContractLocked(c)
	}
	for _, bud := range b.Budgets {
		s.budgets[bud.TeamID] = bud.Clone()
	}
	for _, l := range b.Listings {
		s.listings[l.ID] = l.Clone()
	}
	for _, t := range b.Tournaments {
		s.tournaments[t.ID] = t.Clone()
	}
	for _, sr := range b.Series {
		s.putSeriesLocked(sr)
	}
	if b.Rankings != nil {
		s.rankings = append([]tournaments.RankedTeam(nil), b.Rankings...)
	}
}

func (s *MemoryStore) putContractLocked(c contracts.Contract) {
	if prevID, ok := s.active[c.PlayerID]; ok && prevID == c.ID && !c.IsActive() {
		delete(s.active, c.PlayerID)
	}
	if c.IsActive() {
		s.active[c.PlayerID] = c.ID
	}
	s.contracts[c.ID] = c.Clone()
}

func (s *MemoryStore) putSeriesLocked(sr matches.Series) {
	cp := sr
	cp.Veto = append([]matches.Veto(nil), sr.Veto...)
	cp.Maps = make([]matches.MatchResult, len(sr.Maps))
	for i, m := range sr.Maps {
		cp.Maps[i] = m.Summary()
		s.matchIndex[m.ID] = sr.ID
	}
	s.series[sr.ID] = cp
}

// Season returns the current season.
func (s *MemoryStore) Season() seasons.Season {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.season
}

// Team retrieves a team by ID.
func (s *MemoryStore) Team(id string) (teams.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return teams.Team{}, false
	}
	return t.Clone(), true
}

// Teams returns every team ordered by ID.
func (s *MemoryStore) Teams() []teams.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]teams.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Player retrieves a player by ID.
func (s *MemoryStore) Player(id string) (players.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return players.Player{}, false
	}
	return p.Clone(), true
}

// Players returns every player ordered by ID.
func (s *MemoryStore) Players() []players.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]players.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActiveContract returns the player's active contract.
func (s *MemoryStore) ActiveContract(playerID string) (contracts.Contract, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.active[playerID]
	if !ok {
		return contracts.Contract{}, false
	}
	return s.contracts[id].Clone(), true
}

// Contracts returns every contract, including ended ones, ordered by ID.
func (s *MemoryStore) Contracts() []contracts.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]contracts.Contract, 0, len(s.contracts))
	for _, c := range s.contracts {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActiveContracts returns active contracts ordered by ID, optionally filtered by team.
func (s *MemoryStore) ActiveContracts(teamID string) []contracts.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []contracts.Contract
	for _, id := range s.active {
		c := s.contracts[id]
		if teamID != "" && c.TeamID != teamID {
			continue
		}
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Budget returns a team's budget.
func (s *MemoryStore) Budget(teamID string) (contracts.Budget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[teamID]
	if !ok {
		return contracts.Budget{}, false
	}
	return b.Clone(), true
}

// Listing retrieves a listing by ID.
func (s *MemoryStore) Listing(id string) (transfers.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.listings[id]
	if !ok {
		return transfers.Listing{}, false
	}
	return l.Clone(), true
}

// Listings returns listings ordered by listed day then ID. When activeOn is
// non-negative only listings active on that day are returned.
func (s *MemoryStore) Listings(activeOn int) []transfers.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []transfers.Listing
	for _, l := range s.listings {
		if activeOn >= 0 && !l.IsActive(activeOn) {
			continue
		}
		out = append(out, l.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ListedDay != out[j].ListedDay {
			return out[i].ListedDay < out[j].ListedDay
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Tournament retrieves a tournament by ID.
func (s *MemoryStore) Tournament(id string) (tournaments.Tournament, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[id]
	if !ok {
		return tournaments.Tournament{}, false
	}
	return t.Clone(), true
}

// Tournaments returns every tournament ordered by start day then ID.
func (s *MemoryStore) Tournaments() []tournaments.Tournament {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]tournaments.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDay != out[j].StartDay {
			return out[i].StartDay < out[j].StartDay
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Series retrieves a series by ID.
func (s *MemoryStore) Series(id string) (matches.Series, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sr, ok := s.series[id]
	if !ok {
		return matches.Series{}, false
	}
	return copySeries(sr), true
}

// Match returns the stored summary for a map result.
func (s *MemoryStore) Match(id string) (matches.MatchResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seriesID, ok := s.matchIndex[id]
	if !ok {
		return matches.MatchResult{}, false
	}
	for _, m := range s.series[seriesID].Maps {
		if m.ID == id {
			return m.Summary(), true
		}
	}
	return matches.MatchResult{}, false
}

// Rankings returns the world ranking table.
func (s *MemoryStore) Rankings() []tournaments.RankedTeam {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]tournaments.RankedTeam(nil), s.rankings...)
}

func copySeries(sr matches.Series) matches.Series {
	out := sr
	out.Veto = append([]matches.Veto(nil), sr.Veto...)
	out.Maps = make([]matches.MatchResult, len(sr.Maps))
	for i, m := range sr.Maps {
		out.Maps[i] = m.Summary()
	}
	return out
}
