package usecase

import (
	"context"
	"errors"
	"strings"

	"vision/internal/task"
	repo "vision/internal/task/repository"
)

// errNoop aborts an UpdateTask transaction that would not change anything.
var errNoop = errors.New("no change")

// Update merges the non-nil fields of input into the stored task.
func (uc *implUseCase) Update(ctx context.Context, input task.UpdateInput) (task.UpdateOutput, error) {
	if err := validateUpdate(input); err != nil {
		return task.UpdateOutput{}, err
	}

	t, err := uc.repo.UpdateTask(ctx, repo.UpdateTaskOptions{
		ID: input.ID,
		Mutate: func(t *task.Task) error {
			if t.Deleted {
				return task.ErrTaskDeleted
			}
			applyUpdate(t, input)
			return nil
		},
	})
	if err != nil {
		err = mapRepoError(err)
		if !errors.Is(err, task.ErrTaskNotFound) && !errors.Is(err, task.ErrTaskDeleted) {
			uc.l.Errorf(ctx, "uc.Update UpdateTask: %v", err)
		}
		return task.UpdateOutput{}, err
	}

	uc.notify(ctx, t.ID)
	return task.UpdateOutput{Task: t}, nil
}

// Start marks a task in progress.
func (uc *implUseCase) Start(ctx context.Context, id string) (task.UpdateOutput, error) {
	status := task.StatusInProgress
	return uc.Update(ctx, task.UpdateInput{ID: id, Status: &status})
}

// Complete marks a task completed.
func (uc *implUseCase) Complete(ctx context.Context, id string) (task.UpdateOutput, error) {
	status := task.StatusCompleted
	return uc.Update(ctx, task.UpdateInput{ID: id, Status: &status})
}

// Delete sets the tombstone flag. Deleting a tombstone is a no-op.
func (uc *implUseCase) Delete(ctx context.Context, id string) error {
	_, err := uc.repo.UpdateTask(ctx, repo.UpdateTaskOptions{
		ID: id,
		Mutate: func(t *task.Task) error {
			if t.Deleted {
				return errNoop
			}
			t.Deleted = true
			return nil
		},
	})
	switch {
	case errors.Is(err, errNoop):
		return nil
	case err != nil:
		err = mapRepoError(err)
		if !errors.Is(err, task.ErrTaskNotFound) {
			uc.l.Errorf(ctx, "uc.Delete UpdateTask: %v", err)
		}
		return err
	}

	uc.notify(ctx, id)
	return nil
}

func validateUpdate(input task.UpdateInput) error {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return task.ErrEmptyTitle
	}
	if input.Status != nil && !input.Status.IsValid() {
		return task.ErrInvalidStatus
	}
	if input.Source != nil && !input.Source.IsValid() {
		return task.ErrInvalidSource
	}
	return nil
}

func applyUpdate(t *task.Task, input task.UpdateInput) {
	if input.Title != nil {
		t.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.Source != nil {
		t.Source = *input.Source
	}
	if input.EstimatedTime != nil {
		t.EstimatedTime = *input.EstimatedTime
	}
	if input.PreparedItems != nil {
		t.PreparedItems = cleanItems(*input.PreparedItems)
	}
	if input.Position != nil {
		t.Position = *input.Position
	}
}
