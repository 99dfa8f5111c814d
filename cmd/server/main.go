package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/esports-sim/internal/config"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/server"
)

const serviceName = "esports-sim"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		logging.Error(logging.NewLogger(logging.Config{Service: serviceName}), "invalid configuration", err)
		return 2
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
		Version: cfg.Version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "startup failed", err)
		return 1
	}
	srv.Run(ctx, stop)
	return 0
}
