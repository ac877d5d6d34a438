package repository

import (
	"time"

	"vision/internal/task"
)

// CreateTaskOptions holds a fully populated task to insert. The store marks it pending.
type CreateTaskOptions struct {
	Task task.Task
}

// GetOneTaskOptions holds filter parameters for fetching a single task.
type GetOneTaskOptions struct {
	ID string
}

// ListTasksOptions holds filter parameters for listing tasks.
// Results are ordered by position, then created_at.
type ListTasksOptions struct {
	Status         task.Status
	IncludeDeleted bool
	Limit          int
}

// UpdateTaskOptions identifies the row to change and how to change it.
// Mutate may return an error to abort the transaction unchanged.
type UpdateTaskOptions struct {
	ID     string
	Mutate func(t *task.Task) error
}

// ApplyRemoteOptions carries documents received from the remote API.
type ApplyRemoteOptions struct {
	Documents []task.Task
	// Force applies every document regardless of timestamps (push conflicts: the master copy wins).
	Force bool
	// Pushed holds the updated_at each forced document had locally when it was pushed.
	// A row written again since then is kept and stays pending.
	Pushed map[string]time.Time
}

// ApplyResult reports what ApplyRemote did.
type ApplyResult struct {
	Applied []string // ids written locally
	Skipped []string // ids kept because the local copy is newer
}
