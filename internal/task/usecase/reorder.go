package usecase

import (
	"context"
	"errors"
	"fmt"

	"vision/internal/task"
	repo "vision/internal/task/repository"
)

// Reorder gives ids[i] position i. Only tasks whose position differs are written,
// each in its own transaction; failures are joined and the rest still apply.
func (uc *implUseCase) Reorder(ctx context.Context, input task.ReorderInput) (task.ReorderOutput, error) {
	if len(input.IDs) == 0 {
		return task.ReorderOutput{}, task.ErrEmptyReorder
	}
	seen := make(map[string]struct{}, len(input.IDs))
	for _, id := range input.IDs {
		if _, dup := seen[id]; dup {
			return task.ReorderOutput{}, fmt.Errorf("%w: %s", task.ErrDuplicateOrder, id)
		}
		seen[id] = struct{}{}
	}

	current, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{IncludeDeleted: true})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Reorder ListTasks: %v", err)
		return task.ReorderOutput{}, err
	}
	byID := make(map[string]task.Task, len(current))
	for _, t := range current {
		byID[t.ID] = t
	}

	var (
		out  task.ReorderOutput
		errs []error
	)
	for i, id := range input.IDs {
		t, ok := byID[id]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w", id, task.ErrTaskNotFound))
			continue
		}
		if t.Position == i && !t.Deleted {
			continue
		}

		pos := i
		_, err := uc.repo.UpdateTask(ctx, repo.UpdateTaskOptions{
			ID: id,
			Mutate: func(t *task.Task) error {
				if t.Deleted {
					return task.ErrTaskDeleted
				}
				t.Position = pos
				return nil
			},
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, mapRepoError(err)))
			continue
		}
		out.Changed = append(out.Changed, id)
	}

	uc.notify(ctx, out.Changed...)
	if len(errs) > 0 {
		uc.l.Warnf(ctx, "uc.Reorder: %d of %d tasks failed", len(errs), len(input.IDs))
		return out, errors.Join(errs...)
	}
	return out, nil
}
