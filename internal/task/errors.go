package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrTaskDeleted    = errors.New("task is deleted")
	ErrEmptyTitle     = errors.New("task title is empty")
	ErrInvalidStatus  = errors.New("invalid task status")
	ErrInvalidSource  = errors.New("invalid task source")
	ErrEmptyReorder   = errors.New("reorder needs at least one task id")
	ErrDuplicateOrder = errors.New("reorder contains a duplicate task id")
)
