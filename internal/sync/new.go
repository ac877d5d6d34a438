package sync

import (
	"context"
	gosync "sync"
	"time"

	"vision/internal/task"
	"vision/internal/task/repository"
	pkgLog "vision/pkg/log"

	"golang.org/x/time/rate"
)

const (
	defaultIdentifier   = "task-sync-v1"
	defaultBatchSize    = 100
	defaultInterval     = 30 * time.Second
	defaultCycleTimeout = time.Minute
	defaultMaxPullPages = 1000
)

type implReplicator struct {
	repo      repository.ReplicationRepository
	remote    Remote
	l         pkgLog.Logger
	cfg       Config
	listeners []task.ChangeListener
	creds     Credentials

	trigger chan struct{}
	limiter *rate.Limiter
	now     func() time.Time

	// cycleMu allows a single cycle in flight.
	cycleMu gosync.Mutex

	statusMu gosync.Mutex
	status   Status
}

// New creates a Replicator. Listeners hear about documents written by replication.
func New(l pkgLog.Logger, repo repository.ReplicationRepository, remote Remote, cfg Config, listeners ...task.ChangeListener) *implReplicator {
	if cfg.Identifier == "" {
		cfg.Identifier = defaultIdentifier
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.CycleTimeout <= 0 {
		cfg.CycleTimeout = defaultCycleTimeout
	}
	if cfg.MaxPullPages <= 0 {
		cfg.MaxPullPages = defaultMaxPullPages
	}
	limit := rate.Inf
	if cfg.PushPerSec > 0 {
		limit = rate.Limit(cfg.PushPerSec)
	}
	burst := cfg.PushBurst
	if burst <= 0 {
		burst = 1
	}

	return &implReplicator{
		repo:      repo,
		remote:    remote,
		l:         l,
		cfg:       cfg,
		listeners: listeners,
		trigger:   make(chan struct{}, 1),
		limiter:   rate.NewLimiter(limit, burst),
		now:       time.Now,
		status:    Status{State: StateIdle},
	}
}

// AddListener registers another change listener before Run starts.
func (r *implReplicator) AddListener(li task.ChangeListener) {
	r.listeners = append(r.listeners, li)
}

// UseCredentials makes every cycle reload credentials first.
func (r *implReplicator) UseCredentials(c Credentials) {
	r.creds = c
}

// TasksChanged implements task.ChangeListener so local writes schedule a push.
func (r *implReplicator) TasksChanged(ctx context.Context, ids []string) {
	r.Trigger()
}

func (r *implReplicator) notify(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	for _, li := range r.listeners {
		li.TasksChanged(ctx, ids)
	}
}
