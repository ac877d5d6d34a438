package task

import "time"

// --- Task Domain Model ---

// Status is the lifecycle state of a task.
type Status string

const (
	StatusReady      Status = "ready"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusReady, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Source tags where a task came from.
type Source string

const (
	SourceGitHub   Source = "github"
	SourceCalendar Source = "calendar"
	SourceSlack    Source = "slack"
	SourceDream    Source = "dream"
	SourceManual   Source = "manual"
)

// IsValid reports whether s is one of the known sources.
func (s Source) IsValid() bool {
	switch s {
	case SourceGitHub, SourceCalendar, SourceSlack, SourceDream, SourceManual:
		return true
	}
	return false
}

const (
	DefaultEstimatedTime = "15m"
	DefaultStatus        = StatusReady
	DefaultSource        = SourceManual
)

// Task is the record replicated between this device and the remote API.
type Task struct {
	ID            string
	Title         string
	Description   string
	Status        Status
	Source        Source
	EstimatedTime string   // human readable, never parsed
	PreparedItems []string // decoded once at the store/wire boundary
	Position      int
	Deleted       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Checkpoint marks replication progress: the newest remote document seen so far.
type Checkpoint struct {
	ID        string
	UpdatedAt time.Time
}

// IsZero reports whether no checkpoint has been recorded yet.
func (c Checkpoint) IsZero() bool {
	return c.UpdatedAt.IsZero()
}

// After reports whether c is strictly newer than other.
// Ties on the timestamp are broken by id so the cursor has a total order.
func (c Checkpoint) After(other Checkpoint) bool {
	if !c.UpdatedAt.Equal(other.UpdatedAt) {
		return c.UpdatedAt.After(other.UpdatedAt)
	}
	return c.ID > other.ID
}

// --- UseCase Inputs ---

type CreateInput struct {
	Title         string
	Description   string
	Source        Source
	Status        Status
	EstimatedTime string
	PreparedItems []string
	// ID is optional; importers pass a deterministic id so re-imports are idempotent.
	ID string
}

// UpdateInput carries a partial update. Nil fields are left untouched.
// Deleted is set only by Delete and never cleared.
type UpdateInput struct {
	ID            string
	Title         *string
	Description   *string
	Status        *Status
	Source        *Source
	EstimatedTime *string
	PreparedItems *[]string
	Position      *int
}

type ListInput struct {
	Status         Status
	IncludeDeleted bool
}

type ReorderInput struct {
	IDs []string
}

// --- UseCase Outputs ---

type CreateOutput struct {
	Task    Task
	Created bool // false when CreateInput.ID already existed
}

type ListOutput struct {
	Tasks []Task
	Total int
}

type DetailOutput struct {
	Task Task
}

type UpdateOutput struct {
	Task Task
}

type ReorderOutput struct {
	Changed []string // ids whose position was patched
}
