package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/esports-sim/internal/archive"
	"github.com/preston-bernstein/esports-sim/internal/clock"
	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
	"github.com/preston-bernstein/esports-sim/internal/domain/transfers"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/season"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// Queries is the read surface the handlers serve. *season.Orchestrator
// satisfies it.
type Queries interface {
	GetCurrentSeason() (season.CurrentSeason, bool)
	GetStandings() (season.Standings, bool)
	GetRankings() []tournaments.RankedTeam
	ListTeams() []teams.Team
	GetTeam(teamID string) (teams.Team, bool)
	GetTeamBudget(teamID string) (contracts.Budget, bool)
	GetTeamContracts(teamID string) []contracts.Contract
	TeamHistory(ctx context.Context, teamID string, limit int) ([]archive.Summary, error)
	GetPlayerStats(playerID string) (season.PlayerStats, bool)
	GetPlayerContract(playerID string) (contracts.Contract, bool)
	GetActiveListings() []transfers.Listing
	GetTournament(id string) (tournaments.Tournament, bool)
	GetMatch(ctx context.Context, matchID string) (matches.MatchResult, bool)
}

// Handler wires HTTP routes to the season queries.
type Handler struct {
	q        Queries
	logger   *slog.Logger
	statusFn func() clock.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no clock runs.
func NewHandler(q Queries, logger *slog.Logger, statusFn func() clock.Status) *Handler {
	return &Handler{
		q:        q,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. Without a running clock the world is
// ready once a season exists.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if _, ok := h.q.GetCurrentSeason(); !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, "no season loaded", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

func (h *Handler) Season(w nethttp.ResponseWriter, r *nethttp.Request) {
	cur, ok := h.q.GetCurrentSeason()
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "no season in progress", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, cur, h.logger)
}

func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	table, ok := h.q.GetStandings()
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "no league in progress", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, table, h.logger)
}

func (h *Handler) Rankings(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, nonNil(h.q.GetRankings()), h.logger)
}

func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, nonNil(h.q.ListTeams()), h.logger)
}

func (h *Handler) Team(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	team, ok := h.q.GetTeam(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "team not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, team, h.logger)
}

func (h *Handler) TeamBudget(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	budget, ok := h.q.GetTeamBudget(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "budget not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, budget, h.logger)
}

func (h *Handler) TeamContracts(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if _, ok := h.q.GetTeam(id); !ok {
		writeError(w, r, nethttp.StatusNotFound, "team not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, nonNil(h.q.GetTeamContracts(id)), h.logger)
}

// TeamMatches lists archived maps for a team, most recent first.
func (h *Handler) TeamMatches(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			writeError(w, r, nethttp.StatusBadRequest, "limit must be between 1 and 200", h.logger)
			return
		}
		limit = n
	}
	history, err := h.q.TeamHistory(r.Context(), id, limit)
	if err != nil {
		logging.Error(loggerFromContext(r, h.logger), "team history failed", err, logging.FieldTeamID, id)
		writeError(w, r, nethttp.StatusBadGateway, "match archive unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, nonNil(history), h.logger)
}

func (h *Handler) Player(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	stats, ok := h.q.GetPlayerStats(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "player not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, stats, h.logger)
}

func (h *Handler) PlayerContract(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	c, ok := h.q.GetPlayerContract(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "contract not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, c, h.logger)
}

func (h *Handler) Listings(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, nonNil(h.q.GetActiveListings()), h.logger)
}

func (h *Handler) Tournament(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	t, ok := h.q.GetTournament(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "tournament not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, t, h.logger)
}

func (h *Handler) Match(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	m, ok := h.q.GetMatch(r.Context(), id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "match not found", h.logger)
		return
	}
	loggerFromContext(r, h.logger).Debug("served match", logging.FieldMatchID, id)
	writeJSON(w, nethttp.StatusOK, m, h.logger)
}

// NotFound and MethodNotAllowed keep router errors in the JSON shape.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) pathID(w nethttp.ResponseWriter, r *nethttp.Request) (string, bool) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" || strings.ContainsAny(id, " \t") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid id", h.logger)
		return "", false
	}
	return id, true
}

// nonNil keeps empty collections encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
