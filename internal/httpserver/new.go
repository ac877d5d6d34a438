package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vision/internal/calendar"
	"vision/internal/dream"
	"vision/internal/insights"
	"vision/internal/preferences"
	"vision/internal/session"
	"vision/internal/sync"
	"vision/internal/task"
	taskHTTP "vision/internal/task/delivery/http"
	"vision/internal/webhook"
	"vision/pkg/log"
)

const environmentProduction = "production"

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	srv         *http.Server
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string
	store       Pinger

	// Middleware
	allowedOrigins []string
	requestsPerMin int

	// Domains
	taskUC     task.UseCase
	streamer   taskHTTP.Streamer
	replicator sync.Replicator
	sessionUC  session.UseCase
	prefsUC    preferences.UseCase
	dreamUC    dream.UseCase
	calendarUC calendar.UseCase
	insightsUC insights.UseCase
	github     webhook.Applier
	githubSec  webhook.SecurityConfig
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string

	// Store is pinged by /ready. Optional.
	Store Pinger

	AllowedOrigins []string
	RequestsPerMin int

	// Task domain
	TaskUC   task.UseCase
	Streamer taskHTTP.Streamer

	// Replication. Optional: the sync routes are skipped when nil.
	Replicator sync.Replicator

	// Local state services
	SessionUC     session.UseCase
	PreferencesUC preferences.UseCase
	DreamUC       dream.UseCase

	// Integrations. Optional.
	CalendarUC calendar.UseCase
	Insights   insights.UseCase

	// GitHubIntake is only routed when GitHubWebhook.Secret is set.
	GitHubIntake  webhook.Applier
	GitHubWebhook webhook.SecurityConfig
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		host:           cfg.Host,
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		store:          cfg.Store,
		allowedOrigins: cfg.AllowedOrigins,
		requestsPerMin: cfg.RequestsPerMin,
		taskUC:         cfg.TaskUC,
		streamer:       cfg.Streamer,
		replicator:     cfg.Replicator,
		sessionUC:      cfg.SessionUC,
		prefsUC:        cfg.PreferencesUC,
		dreamUC:        cfg.DreamUC,
		calendarUC:     cfg.CalendarUC,
		insightsUC:     cfg.Insights,
		github:         cfg.GitHubIntake,
		githubSec:      cfg.GitHubWebhook,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.taskUC == nil {
		return errors.New("task usecase is required")
	}
	if srv.streamer == nil {
		return errors.New("task streamer is required")
	}
	if srv.sessionUC == nil {
		return errors.New("session usecase is required")
	}
	if srv.prefsUC == nil {
		return errors.New("preferences usecase is required")
	}
	if srv.dreamUC == nil {
		return errors.New("dream usecase is required")
	}
	return nil
}
