package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vision/config"
	"vision/internal/calendar"
	calendarUC "vision/internal/calendar/usecase"
	"vision/internal/dream"
	dreamUC "vision/internal/dream/usecase"
	"vision/internal/kv"
	"vision/internal/live"
	"vision/internal/preferences"
	prefsUC "vision/internal/preferences/usecase"
	"vision/internal/session"
	sessionUC "vision/internal/session/usecase"
	"vision/internal/sync"
	"vision/internal/task"
	"vision/internal/webhook"
	taskSqlite "vision/internal/task/repository/sqlite"
	taskUC "vision/internal/task/usecase"
	"vision/pkg/gcalendar"
	"vision/pkg/log"
	pkgSqlite "vision/pkg/sqlite"
	"vision/pkg/visionapi"
)

// App is the wired set of local services shared by the daemon, the worker and the CLI.
type App struct {
	DB  *sql.DB
	API *visionapi.Client

	Tasks       task.UseCase
	Hub         *live.Hub
	Replicator  sync.Replicator
	Session     session.UseCase
	Preferences preferences.UseCase
	Dream       dream.UseCase
	// Calendar is nil when no Google credentials are configured.
	Calendar calendar.UseCase
	GitHub   *webhook.Intake

	l       log.Logger
	closers []func() error
}

// New opens the local store and wires every service. Call Close when done.
func New(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	schema := append(append([]string{}, kv.Schema...), taskSqlite.Schema...)
	db, err := pkgSqlite.Open(ctx, cfg.Store.Path, schema...)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := &App{DB: db, l: l}
	a.closers = append(a.closers, db.Close)

	store := kv.New(db, l)

	// The session is both the token source of the API client and a user of it.
	sess := sessionUC.New(l, store)
	a.API = visionapi.New(visionapi.Config{
		BaseURL:    cfg.Remote.BaseURL,
		LoginPath:  cfg.Remote.LoginPath,
		Timeout:    cfg.Remote.Timeout,
		CacheTTL:   cfg.Remote.CacheTTL,
		Tokens:     sess,
		Redirector: sess,
	})
	sess.UseAPI(a.API)
	a.Session = sess

	taskStore := taskSqlite.New(db, l)
	tasks := taskUC.New(l, taskStore)
	a.Tasks = tasks

	a.Hub = live.New(l, tasks)
	tasks.AddListener(a.Hub)

	replicator := sync.New(l, taskStore, a.API, sync.Config{
		Identifier:   cfg.Replication.Identifier,
		BatchSize:    cfg.Replication.BatchSize,
		Interval:     cfg.Replication.Interval,
		PushPerSec:   cfg.Replication.PushPerSec,
		PushBurst:    cfg.Replication.PushBurst,
		CycleTimeout: cfg.Replication.CycleTimeout,
	}, a.Hub)
	tasks.AddListener(replicator)
	replicator.UseCredentials(sess)
	sess.AddListener(session.ListenerFunc(func(ctx context.Context, st session.State) {
		if st.Authenticated {
			replicator.Trigger()
		}
	}))
	a.Replicator = replicator

	a.Preferences = prefsUC.New(l, store)
	a.Dream = dreamUC.New(l, store, a.API, tasks)

	a.GitHub = webhook.NewIntake(l, tasks)

	if cfg.GoogleCalendar.CredentialsPath != "" {
		events, err := newCalendarClient(ctx, cfg.GoogleCalendar)
		if err != nil {
			l.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			l.Warn(ctx, "Run `vision calendar auth` to generate the token file")
		} else {
			a.Calendar = calendarUC.New(l, events, tasks, cfg.GoogleCalendar.CalendarID, cfg.GoogleCalendar.LookaheadDays)
		}
	}

	if err := a.open(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) open(ctx context.Context) error {
	if err := a.Session.Open(ctx); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	a.closers = append(a.closers, a.Session.Close)

	if err := a.Preferences.Open(ctx); err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	a.closers = append(a.closers, a.Preferences.Close)

	if err := a.Dream.Open(ctx); err != nil {
		return fmt.Errorf("open dream: %w", err)
	}
	a.closers = append(a.closers, a.Dream.Close)
	return nil
}

// Close releases the services in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newCalendarClient(ctx context.Context, cfg config.GoogleCalendarConfig) (*gcalendar.Client, error) {
	credsPath, err := pkgSqlite.ExpandPath(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}
	tokenPath, err := pkgSqlite.ExpandPath(cfg.TokenPath)
	if err != nil {
		return nil, err
	}
	return gcalendar.NewClientFromCredentialsFile(ctx, credsPath, tokenPath)
}
