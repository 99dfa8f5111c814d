package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/preston-bernstein/esports-sim/internal/http/handlers"
	"github.com/preston-bernstein/esports-sim/internal/http/middleware"
	"github.com/preston-bernstein/esports-sim/internal/metrics"
)

// NewRouter registers the read-only routes, request logging, and CORS.
// An empty origins list allows any origin.
func NewRouter(h *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder, origins []string) nethttp.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = middleware.LoggingMiddleware(logger, recorder, nethttp.HandlerFunc(h.NotFound))
	router.MethodNotAllowedHandler = middleware.LoggingMiddleware(logger, recorder, nethttp.HandlerFunc(h.MethodNotAllowed))
	router.Use(middleware.Logging(logger, recorder))

	get := func(path string, fn nethttp.HandlerFunc) {
		router.HandleFunc(path, fn).Methods(nethttp.MethodGet)
	}
	get("/health", h.Health)
	get("/ready", h.Ready)
	get("/season", h.Season)
	get("/standings", h.Standings)
	get("/rankings", h.Rankings)
	get("/teams", h.Teams)
	get("/teams/{id}", h.Team)
	get("/teams/{id}/budget", h.TeamBudget)
	get("/teams/{id}/contracts", h.TeamContracts)
	get("/teams/{id}/matches", h.TeamMatches)
	get("/players/{id}", h.Player)
	get("/players/{id}/contract", h.PlayerContract)
	get("/listings", h.Listings)
	get("/tournaments/{id}", h.Tournament)
	get("/matches/{id}", h.Match)

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler(router)
}
