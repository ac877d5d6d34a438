package repository

import (
	"context"

	"vision/internal/task"
)

// Repository is the local document store the task use case writes through.
type Repository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (task.Task, error)
	// GetOneTask returns a zero-value Task (ID == "") when nothing matches.
	GetOneTask(ctx context.Context, opt GetOneTaskOptions) (task.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]task.Task, error)
	// UpdateTask runs opt.Mutate on the stored row inside one transaction and
	// stamps a strictly newer updated_at. Returns ErrNotFound for unknown ids.
	UpdateTask(ctx context.Context, opt UpdateTaskOptions) (task.Task, error)
	// MaxPosition returns the highest position among visible tasks; ok is false when there are none.
	MaxPosition(ctx context.Context) (pos int, ok bool, err error)
	CountPending(ctx context.Context) (int, error)
}

// ReplicationRepository is the side of the store the replicator drives.
type ReplicationRepository interface {
	ListPending(ctx context.Context, limit int) ([]task.Task, error)
	MarkPushed(ctx context.Context, docs []task.Task) error
	ApplyRemote(ctx context.Context, opt ApplyRemoteOptions) (ApplyResult, error)
	GetCheckpoint(ctx context.Context, identifier string) (task.Checkpoint, error)
	// SaveCheckpoint never moves a checkpoint backwards; it returns the checkpoint now stored.
	SaveCheckpoint(ctx context.Context, identifier string, cp task.Checkpoint) (task.Checkpoint, error)
	CountPending(ctx context.Context) (int, error)
}
