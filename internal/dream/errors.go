package dream

import "errors"

var (
	ErrEmptyDream        = errors.New("dream is empty")
	ErrAnalyzing         = errors.New("analysis already running")
	ErrAnalysisFailed    = errors.New("dream analysis failed")
	ErrStepNotFound      = errors.New("step not found")
	ErrInvalidStepStatus = errors.New("step status must be pending, active or completed")
	ErrNoSteps           = errors.New("no steps to promote")
)
