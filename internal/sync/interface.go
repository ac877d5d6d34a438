package sync

import (
	"context"

	"vision/pkg/visionapi"
)

// Replicator keeps the local task store and the remote API converging.
type Replicator interface {
	// RunOnce pushes pending changes, then pulls remote changes.
	RunOnce(ctx context.Context) (CycleResult, error)
	Pull(ctx context.Context) (PullResult, error)
	Push(ctx context.Context) (PushResult, error)
	// Run cycles on the configured interval and on Trigger until ctx is done.
	Run(ctx context.Context) error
	// Trigger asks Run for an early cycle. It never blocks.
	Trigger()
	Status(ctx context.Context) (Status, error)
}

// Remote is the replication slice of the Vision API.
type Remote interface {
	PullTasks(ctx context.Context, req visionapi.PullRequest) (visionapi.PullResponse, error)
	PushTasks(ctx context.Context, docs []visionapi.TaskDocument) ([]visionapi.TaskDocument, error)
}

// Credentials lets a cycle pick up a login made by another process.
type Credentials interface {
	Reload(ctx context.Context) (bool, error)
}

var _ Remote = (visionapi.IVision)(nil)
