package season

import (
	"context"

	"github.com/preston-bernstein/esports-sim/internal/archive"
	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/seasons"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
	"github.com/preston-bernstein/esports-sim/internal/domain/transfers"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/timeutil"
)

// PlayerStats is a player snapshot with derived career numbers.
type PlayerStats struct {
	Player players.Player `json:"player"`
	KDA    float64        `json:"kda"`
}

// CurrentSeason is the season with its derived phase and day.
type CurrentSeason struct {
	seasons.Season
	Phase    seasons.Phase `json:"phase"`
	Day      int           `json:"day"`
	Date     string        `json:"date"`
	Progress float64       `json:"progress"`
}

// Standings is a league table keyed to its tournament.
type Standings struct {
	TournamentID string                 `json:"tournamentId"`
	Rows         []tournaments.Standing `json:"rows"`
}

// GetPlayerStats returns a copy of the player with their KDA, or false if unknown.
func (o *Orchestrator) GetPlayerStats(playerID string) (PlayerStats, bool) {
	p, ok := o.store.Player(playerID)
	if !ok {
		return PlayerStats{}, false
	}
	return PlayerStats{Player: p, KDA: p.KDA()}, true
}

// GetTeamBudget returns a copy of the team's budget, or false if none was initialized.
func (o *Orchestrator) GetTeamBudget(teamID string) (contracts.Budget, bool) {
	return o.economy.GetTeamBudget(teamID)
}

// GetActiveListings returns listings open on the current day.
func (o *Orchestrator) GetActiveListings() []transfers.Listing {
	return o.economy.GetActiveListings(o.store.Season().Day())
}

// GetPlayerContract returns the player's active contract, or false if unsigned.
func (o *Orchestrator) GetPlayerContract(playerID string) (contracts.Contract, bool) {
	return o.economy.GetPlayerContract(playerID)
}

// GetTeamContracts returns copies of the team's active contracts.
func (o *Orchestrator) GetTeamContracts(teamID string) []contracts.Contract {
	return o.economy.GetTeamContracts(teamID)
}

// GetCurrentSeason reports the season and its calendar position, or false before the first season starts.
func (o *Orchestrator) GetCurrentSeason() (CurrentSeason, bool) {
	s := o.store.Season()
	if s.LengthDays <= 0 {
		return CurrentSeason{}, false
	}
	return CurrentSeason{
		Season:   s,
		Phase:    s.Phase(),
		Day:      s.Day(),
		Date:     timeutil.FormatDate(timeutil.SeasonDate(s.Year, s.DaysPassed)),
		Progress: s.Progress(),
	}, true
}

// GetStandings returns the current league table.
func (o *Orchestrator) GetStandings() (Standings, bool) {
	s := o.store.Season()
	if s.LeagueID == "" {
		return Standings{}, false
	}
	t, ok := o.store.Tournament(s.LeagueID)
	if !ok {
		return Standings{}, false
	}
	return Standings{TournamentID: t.ID, Rows: t.Standings}, true
}

// GetRankings returns a copy of the world ranking table.
func (o *Orchestrator) GetRankings() []tournaments.RankedTeam {
	return o.store.Rankings()
}

// GetTeam returns a copy of the team, or false if unknown.
func (o *Orchestrator) GetTeam(teamID string) (teams.Team, bool) {
	return o.store.Team(teamID)
}

// ListTeams returns copies of every team ordered by ID.
func (o *Orchestrator) ListTeams() []teams.Team {
	return o.store.Teams()
}

// GetTournament returns a copy of the tournament, or false if unknown.
func (o *Orchestrator) GetTournament(id string) (tournaments.Tournament, bool) {
	return o.store.Tournament(id)
}

// GetMatch looks in the current season first, then the archive. Archive
// failures are logged and reported as absent.
func (o *Orchestrator) GetMatch(ctx context.Context, matchID string) (matches.MatchResult, bool) {
	if m, ok := o.store.Match(matchID); ok {
		return m, true
	}
	m, ok, err := o.archive.Get(ctx, matchID)
	if err != nil {
		logging.Warn(o.log(ctx), "archive lookup failed", logging.FieldMatchID, matchID, "err", err)
		return matches.MatchResult{}, false
	}
	return m, ok
}

// TeamHistory lists a team's archived maps, most recent first.
func (o *Orchestrator) TeamHistory(ctx context.Context, teamID string, limit int) ([]archive.Summary, error) {
	return o.archive.ByTeam(ctx, teamID, limit)
}
