package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vision/config"
	_ "vision/docs" // Swagger docs
	"vision/internal/app"
	"vision/internal/httpserver"
	"vision/internal/webhook"
	"vision/pkg/log"
)

// @title       Vision Local Agent API
// @description Local-first task store, replication and planning services for the Vision UI.
// @version     1
// @host        localhost:8787
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Vision local agent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Remote API: %s", cfg.Remote.BaseURL)

	// 3. Local services
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize services: ", err)
		return
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warnf(ctx, "Close: %v", err)
		}
	}()

	// 4. Replication loop (optional)
	httpCfg := httpserver.Config{
		Logger:         logger,
		Host:           cfg.HTTPServer.Host,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		Store:          a.DB,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestsPerMin: cfg.RateLimit.RequestsPerMin,
		TaskUC:         a.Tasks,
		Streamer:       a.Hub,
		SessionUC:      a.Session,
		PreferencesUC:  a.Preferences,
		DreamUC:        a.Dream,
		CalendarUC:     a.Calendar,
		Insights:       a.API,
		GitHubIntake:   a.GitHub,
		GitHubWebhook: webhook.SecurityConfig{
			Secret:          cfg.GitHubWebhook.Secret,
			AllowedIPs:      cfg.GitHubWebhook.AllowedIPs,
			RateLimitPerMin: cfg.GitHubWebhook.RateLimitPerMin,
		},
	}
	replDone := make(chan struct{})
	if cfg.Replication.Enabled {
		httpCfg.Replicator = a.Replicator
		go func() {
			defer close(replDone)
			if err := a.Replicator.Run(ctx); err != nil {
				logger.Errorf(ctx, "Replication stopped: %v", err)
			}
		}()
		logger.Infof(ctx, "Replication enabled every %s", cfg.Replication.Interval)
	} else {
		close(replDone)
		logger.Warn(ctx, "Replication disabled: tasks stay on this device")
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpCfg)
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		stop()
	}

	<-replDone
	logger.Info(ctx, "Server stopped gracefully")
}
