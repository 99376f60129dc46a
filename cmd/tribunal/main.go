package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/tribunal/adapter/cli"
	"github.com/felixgeelhaar/tribunal/internal/app"
	"github.com/felixgeelhaar/tribunal/pkg/config"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCfg := observability.DefaultLogConfig()
	logCfg.ServiceVersion = cli.Version
	logger := observability.NewLogger(logCfg)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
		logCfg.ServiceVersion = cli.Version
	}
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logCfg.Format = observability.LogFormat(cfg.LogFormat)
	logger = observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
		// Commands that need the container report it; version still runs.
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		defer container.Close()
		cli.SetApp(cli.NewApp(container))
	}

	cli.Execute(ctx)
}
