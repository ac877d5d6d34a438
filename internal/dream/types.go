package dream

import "time"

// StorageKey is where the plan is persisted.
const StorageKey = "vision-dream-data"

const DefaultTargetDuration = "6 months"

type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepActive    StepStatus = "active"
	StepCompleted StepStatus = "completed"
)

func (s StepStatus) IsValid() bool {
	return s == StepPending || s == StepActive || s == StepCompleted
}

type SubTask struct {
	Week         string `json:"week"`
	Task         string `json:"task"`
	FreeResource string `json:"freeResource,omitempty"`
	PaidResource string `json:"paidResource,omitempty"`
}

type Step struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	Status      StepStatus `json:"status"`
	SubTasks    []SubTask  `json:"subTasks,omitempty"`
}

// Plan is the persisted dream and its roadmap.
type Plan struct {
	Dream          string `json:"dream"`
	TargetDuration string `json:"targetDuration"`
	Steps          []Step `json:"steps"`
}

// State is the plan plus transient analysis state.
type State struct {
	Plan
	Analyzing  bool
	LastError  string
	AnalyzedAt time.Time
}

// UpdateInput changes the dream text or target; nil fields are kept.
type UpdateInput struct {
	Dream          *string
	TargetDuration *string
}

type PromoteInput struct {
	// StepIDs selects steps; empty means every step not yet completed.
	StepIDs []int
}

type PromoteOutput struct {
	Created []string // task ids inserted by this call
	Existed []string // task ids already promoted earlier
}
