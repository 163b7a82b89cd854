package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/league-sim-service/internal/config"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
	"github.com/preston-bernstein/league-sim-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run())
}

func run() int {
	if err := config.LoadDotEnv(); err != nil {
		logging.Warn(logging.NewLogger(logging.Config{}), "dotenv load failed", "error", err)
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "server setup failed", err)
		return 1
	}
	if err := srv.Run(ctx); err != nil {
		logging.Error(logger, "server stopped with error", err)
		return 1
	}
	return 0
}
