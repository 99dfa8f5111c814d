package server

import (
	"log/slog"

	"github.com/preston-bernstein/esports-sim/internal/config"
	"github.com/preston-bernstein/esports-sim/internal/metrics"
	"github.com/preston-bernstein/esports-sim/internal/providers"
)

// providerFactory assembles the data pack provider with the shared retry wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.Provider {
	base := selectProvider(cfg, f.logger)
	return f.wrap(cfg, base)
}

func (f providerFactory) wrap(cfg config.Config, base providers.Provider) providers.Provider {
	return providers.NewRetryingProvider(base, f.logger, f.metrics, normalizeProviderName(cfg.DataPack.Source, base), cfg.DataPack.Attempts, 0)
}
