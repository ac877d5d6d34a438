package usecase

import (
	"context"

	"vision/internal/task"
	repo "vision/internal/task/repository"
)

// List returns tasks sorted by position. Tombstones are hidden unless asked for.
func (uc *implUseCase) List(ctx context.Context, input task.ListInput) (task.ListOutput, error) {
	if input.Status != "" && !input.Status.IsValid() {
		return task.ListOutput{}, task.ErrInvalidStatus
	}
	tasks, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{
		Status:         input.Status,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListTasks: %v", err)
		return task.ListOutput{}, err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return task.ListOutput{Tasks: tasks, Total: len(tasks)}, nil
}

// Detail retrieves a visible task by id. Tombstones read as not found.
func (uc *implUseCase) Detail(ctx context.Context, id string) (task.DetailOutput, error) {
	t, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Detail GetOneTask: %v", err)
		return task.DetailOutput{}, err
	}
	if t.ID == "" || t.Deleted {
		return task.DetailOutput{}, task.ErrTaskNotFound
	}
	return task.DetailOutput{Task: t}, nil
}
