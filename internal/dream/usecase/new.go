package usecase

import (
	"sync"
	"time"

	"vision/internal/dream"
	"vision/internal/kv"
	"vision/internal/task"
	pkgLog "vision/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	store    kv.Store
	analyzer dream.Analyzer
	tasks    task.UseCase
	now      func() time.Time

	mu    sync.RWMutex
	state dream.State
	// analyzeMu admits one Analyze at a time.
	analyzeMu sync.Mutex
}

// New creates the dream service. Call Open to load the stored plan.
func New(l pkgLog.Logger, store kv.Store, analyzer dream.Analyzer, tasks task.UseCase) dream.UseCase {
	return &implUseCase{
		l:        l,
		store:    store,
		analyzer: analyzer,
		tasks:    tasks,
		now:      time.Now,
		state:    dream.State{Plan: emptyPlan()},
	}
}

func emptyPlan() dream.Plan {
	return dream.Plan{TargetDuration: dream.DefaultTargetDuration, Steps: []dream.Step{}}
}
