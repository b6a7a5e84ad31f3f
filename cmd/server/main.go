package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/preston-bernstein/matrix-screener/internal/config"
	"github.com/preston-bernstein/matrix-screener/internal/logging"
	"github.com/preston-bernstein/matrix-screener/internal/server"
)

const (
	appName    = "matrix-screener"
	appVersion = "dev"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.New(cfg, logger).Run(ctx, stop)
	return nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.Level,
		Format:  cfg.Format,
		Service: appName,
		Version: appVersion,
	})
}
