package usecase

import (
	"context"
	"strings"

	"vision/internal/task"
	repo "vision/internal/task/repository"
)

// Create inserts a new task at the end of the visible list.
// When input.ID names an existing task, that task is returned unchanged with Created=false.
func (uc *implUseCase) Create(ctx context.Context, input task.CreateInput) (task.CreateOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return task.CreateOutput{}, task.ErrEmptyTitle
	}

	status := task.DefaultStatus
	if input.Status != "" {
		status = input.Status
	}
	if !status.IsValid() {
		return task.CreateOutput{}, task.ErrInvalidStatus
	}
	source := task.DefaultSource
	if input.Source != "" {
		source = input.Source
	}
	if !source.IsValid() {
		return task.CreateOutput{}, task.ErrInvalidSource
	}

	id := input.ID
	if id != "" {
		existing, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{ID: id})
		if err != nil {
			uc.l.Errorf(ctx, "uc.Create GetOneTask: %v", err)
			return task.CreateOutput{}, err
		}
		if existing.ID != "" {
			return task.CreateOutput{Task: existing}, nil
		}
	} else {
		id = uc.newID()
	}

	position, err := uc.nextPosition(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create nextPosition: %v", err)
		return task.CreateOutput{}, err
	}

	t, err := uc.repo.CreateTask(ctx, repo.CreateTaskOptions{Task: task.Task{
		ID:            id,
		Title:         title,
		Description:   input.Description,
		Status:        status,
		Source:        source,
		EstimatedTime: coalesce(input.EstimatedTime, task.DefaultEstimatedTime),
		PreparedItems: cleanItems(input.PreparedItems),
		Position:      position,
	}})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateTask: %v", err)
		return task.CreateOutput{}, err
	}

	uc.notify(ctx, t.ID)
	return task.CreateOutput{Task: t, Created: true}, nil
}

func (uc *implUseCase) nextPosition(ctx context.Context) (int, error) {
	pos, ok, err := uc.repo.MaxPosition(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return pos + 1, nil
}
