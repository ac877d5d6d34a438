package sync

import (
	"time"

	"vision/internal/task"
)

// State summarizes replication health for the UI.
type State string

const (
	StateIdle         State = "idle"
	StateSyncing      State = "syncing"
	StateError        State = "error"
	StateOffline      State = "offline"
	StateUnauthorized State = "unauthorized"
)

// Config tunes the replicator.
type Config struct {
	Identifier   string
	BatchSize    int
	Interval     time.Duration
	PushPerSec   float64 // trigger throttle
	PushBurst    int
	CycleTimeout time.Duration
	// MaxPullPages bounds one pull so a misbehaving server cannot pin the loop.
	MaxPullPages int
}

// PullResult reports one pull.
type PullResult struct {
	Received   int
	Applied    []string
	Skipped    []string
	Checkpoint task.Checkpoint
}

// PushResult reports one push.
type PushResult struct {
	Pushed    int
	Conflicts []string
}

// CycleResult is one push-then-pull cycle.
type CycleResult struct {
	Push PushResult
	Pull PullResult
}

// Status is the replication state exposed over HTTP and the CLI.
type Status struct {
	State      State
	LastError  string
	LastPullAt time.Time
	LastPushAt time.Time
	LastSyncAt time.Time
	Checkpoint task.Checkpoint
	Pending    int
}
