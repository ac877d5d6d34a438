package dream

import (
	"context"

	"vision/pkg/visionapi"
)

// UseCase keeps the long-term goal and the steps the assistant proposed for it.
type UseCase interface {
	Open(ctx context.Context) error
	Close() error
	Get(ctx context.Context) State
	Update(ctx context.Context, input UpdateInput) (State, error)
	// Analyze asks the assistant for steps and marks the first one active.
	Analyze(ctx context.Context) (State, error)
	UpdateStepStatus(ctx context.Context, stepID int, status StepStatus) (State, error)
	// Clear drops the dream and its steps; the target duration is kept.
	Clear(ctx context.Context) (State, error)
	// PromoteSteps inserts steps into the task list with source dream.
	PromoteSteps(ctx context.Context, input PromoteInput) (PromoteOutput, error)
}

// Analyzer is the assistant endpoint used by Analyze.
type Analyzer interface {
	AnalyzeDream(ctx context.Context, req visionapi.DreamAnalysisRequest) ([]visionapi.DreamStep, error)
}
