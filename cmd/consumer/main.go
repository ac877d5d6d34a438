package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vision/config"
	"vision/internal/app"
	"vision/pkg/log"
)

// main runs the replication loop without the local API, for headless devices.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting replication worker...")

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize services: ", err)
		return
	}
	defer a.Close()

	if !a.Session.Current(ctx).Authenticated {
		logger.Warn(ctx, "No session on this device yet: cycles resume after `vision login`")
	}

	if err := a.Replicator.Run(ctx); err != nil {
		logger.Error(ctx, "Replication stopped: ", err)
		return
	}

	logger.Info(ctx, "Worker stopped gracefully")
}
