package usecase

import (
	"context"

	"vision/internal/task"
	"vision/internal/task/repository"
	"vision/pkg/log"

	"github.com/google/uuid"
)

// implUseCase is the private implementation of task.UseCase.
type implUseCase struct {
	repo      repository.Repository
	l         log.Logger
	listeners []task.ChangeListener
	newID     func() string
}

// New creates a new task UseCase. Listeners are told about every change, in order.
func New(l log.Logger, repo repository.Repository, listeners ...task.ChangeListener) *implUseCase {
	return &implUseCase{
		repo:      repo,
		l:         l,
		listeners: listeners,
		newID:     uuid.NewString,
	}
}

// AddListener registers another change listener. It must be called before the use case is shared.
func (uc *implUseCase) AddListener(li task.ChangeListener) {
	uc.listeners = append(uc.listeners, li)
}

func (uc *implUseCase) notify(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}
	for _, li := range uc.listeners {
		li.TasksChanged(ctx, ids)
	}
}
