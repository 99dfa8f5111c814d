package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/esports-sim/internal/archive"
	"github.com/preston-bernstein/esports-sim/internal/clock"
	"github.com/preston-bernstein/esports-sim/internal/config"
	httpserver "github.com/preston-bernstein/esports-sim/internal/http"
	"github.com/preston-bernstein/esports-sim/internal/http/handlers"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/metrics"
	"github.com/preston-bernstein/esports-sim/internal/providers"
	"github.com/preston-bernstein/esports-sim/internal/random"
	"github.com/preston-bernstein/esports-sim/internal/season"
	"github.com/preston-bernstein/esports-sim/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	orchestrator  *season.Orchestrator
	archive       archive.Archive
	httpServer    httpServer
	metricsServer httpServer
	clock         Clock
	metricsStop   func(context.Context) error
}

// New fetches the data pack, restores or creates the world, and wires the
// HTTP surface and the day clock.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil, nil)
}

func newServerWithProvider(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.Provider) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, provider, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.Provider, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}
	pack, err := provider.FetchDataPack(ctx)
	if err != nil {
		return nil, err
	}

	seed, err := resolveSeed(cfg)
	if err != nil {
		return nil, err
	}
	memoryStore := store.NewMemoryStore()
	arch := openArchive(ctx, cfg, logger)
	snaps := buildSnapshots(cfg)

	orch, err := season.New(seasonConfig(cfg), season.Deps{
		Store:   memoryStore,
		Pack:    pack,
		Source:  random.NewSeeded(seed),
		Seed:    seed,
		Archive: arch,
		Writer:  snaps.writer,
		Loader:  snaps.loader,
		Metrics: recorder,
		Logger:  logger,
	})
	if err != nil {
		_ = arch.Close()
		return nil, err
	}
	orch.SetTickInterval(cfg.Clock.TickInterval)
	if err := bootWorld(ctx, cfg, orch, snaps, logger); err != nil {
		_ = arch.Close()
		return nil, err
	}

	var runner Clock
	if cfg.Clock.AutoStart {
		runner = clock.New(orch, logger, cfg.Clock.TickInterval, cfg.Clock.AutosaveEveryDays)
	}
	httpSrv := buildHTTPServer(cfg, orch, logger, recorder, runner)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		orchestrator:  orch,
		archive:       arch,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		clock:         runner,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, orch *season.Orchestrator, httpSrv httpServer, runner Clock) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		orchestrator: orch,
		archive:      archive.Nop{},
		httpServer:   httpSrv,
		clock:        runner,
	}
}

func buildHTTPServer(cfg config.Config, orch *season.Orchestrator, logger *slog.Logger, recorder *metrics.Recorder, runner Clock) httpServer {
	var statusFn func() clock.Status
	if runner != nil {
		statusFn = runner.Status
	}
	handler := handlers.NewHandler(orch, logger, statusFn)
	router := httpserver.NewRouter(handler, logger, recorder, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the clock and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.clock != nil {
		s.clock.Start(ctx)
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops the clock before saving so the save sees a settled
// day, then drains HTTP and closes the archive.
func (s *Server) gracefulShutdown() {
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = shutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if s.clock != nil {
		if err := s.clock.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop clock", "error", err)
		}
	}

	if s.orchestrator != nil && s.cfg.Persistence.SavePath != "" {
		if err := s.orchestrator.Save(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("final save failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.archive != nil {
		if err := s.archive.Close(); err != nil && s.logger != nil {
			s.logger.Warn("archive close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Orchestrator exposes the world for tests and tooling.
func (s *Server) Orchestrator() *season.Orchestrator {
	return s.orchestrator
}
