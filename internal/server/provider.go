package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/esports-sim/internal/config"
	"github.com/preston-bernstein/esports-sim/internal/providers"
	"github.com/preston-bernstein/esports-sim/internal/providers/fixture"
	"github.com/preston-bernstein/esports-sim/internal/providers/jsonfile"
	"github.com/preston-bernstein/esports-sim/internal/providers/remote"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.Provider {
	switch strings.ToLower(cfg.DataPack.Source) {
	case "fixture", "":
		return fixture.New()
	case "file", "jsonfile":
		return jsonfile.New(cfg.DataPack.Path)
	case "remote":
		return remote.NewClient(remote.Config{
			URL:     cfg.DataPack.URL,
			APIKey:  cfg.DataPack.APIKey,
			Timeout: cfg.DataPack.Timeout,
		})
	default:
		if logger != nil {
			logger.Warn("unknown data pack source, falling back to fixture", slog.String("source", cfg.DataPack.Source))
		}
		return fixture.New()
	}
}
