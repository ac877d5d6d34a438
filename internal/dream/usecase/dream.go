package usecase

import (
	"context"
	"strings"

	"vision/internal/dream"
	"vision/pkg/visionapi"
)

// Open loads the stored plan. A broken document is logged and replaced by an empty plan.
func (uc *implUseCase) Open(ctx context.Context) error {
	p := emptyPlan()
	if _, err := uc.store.GetJSON(ctx, dream.StorageKey, &p); err != nil {
		uc.l.Warnf(ctx, "dream.Open: %v", err)
		p = emptyPlan()
	}
	if p.TargetDuration == "" {
		p.TargetDuration = dream.DefaultTargetDuration
	}
	if p.Steps == nil {
		p.Steps = []dream.Step{}
	}

	uc.mu.Lock()
	uc.state = dream.State{Plan: p}
	uc.mu.Unlock()
	return nil
}

func (uc *implUseCase) Close() error { return nil }

func (uc *implUseCase) Get(ctx context.Context) dream.State {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return copyState(uc.state)
}

func (uc *implUseCase) Update(ctx context.Context, input dream.UpdateInput) (dream.State, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := copyState(uc.state)
	if input.Dream != nil {
		next.Dream = *input.Dream
	}
	if input.TargetDuration != nil {
		next.TargetDuration = strings.TrimSpace(*input.TargetDuration)
		if next.TargetDuration == "" {
			next.TargetDuration = dream.DefaultTargetDuration
		}
	}
	if err := uc.save(ctx, next.Plan); err != nil {
		return dream.State{}, err
	}
	uc.state = next
	return copyState(next), nil
}

// Analyze replaces the steps with a fresh proposal. The previous steps are
// cleared before the request, so a failed analysis leaves an empty roadmap.
func (uc *implUseCase) Analyze(ctx context.Context) (dream.State, error) {
	if !uc.analyzeMu.TryLock() {
		return dream.State{}, dream.ErrAnalyzing
	}
	defer uc.analyzeMu.Unlock()

	uc.mu.Lock()
	if strings.TrimSpace(uc.state.Dream) == "" {
		uc.mu.Unlock()
		return dream.State{}, dream.ErrEmptyDream
	}
	req := visionapi.DreamAnalysisRequest{Dream: uc.state.Dream, TargetDuration: uc.state.TargetDuration}
	uc.state.Analyzing = true
	uc.state.LastError = ""
	uc.state.Steps = []dream.Step{}
	uc.mu.Unlock()

	result, err := uc.analyzer.AnalyzeDream(ctx, req)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state.Analyzing = false
	if err != nil {
		uc.l.Warnf(ctx, "dream.Analyze: %v", err)
		uc.state.LastError = dream.ErrAnalysisFailed.Error()
		if serr := uc.save(ctx, uc.state.Plan); serr != nil {
			uc.l.Errorf(ctx, "dream.Analyze save: %v", serr)
		}
		return copyState(uc.state), dream.ErrAnalysisFailed
	}

	uc.state.Steps = toSteps(result)
	uc.state.AnalyzedAt = uc.now()
	if err := uc.save(ctx, uc.state.Plan); err != nil {
		return dream.State{}, err
	}
	return copyState(uc.state), nil
}

func (uc *implUseCase) UpdateStepStatus(ctx context.Context, stepID int, status dream.StepStatus) (dream.State, error) {
	if !status.IsValid() {
		return dream.State{}, dream.ErrInvalidStepStatus
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := copyState(uc.state)
	found := false
	for i := range next.Steps {
		if next.Steps[i].ID == stepID {
			next.Steps[i].Status = status
			found = true
		}
	}
	if !found {
		return dream.State{}, dream.ErrStepNotFound
	}
	if err := uc.save(ctx, next.Plan); err != nil {
		return dream.State{}, err
	}
	uc.state = next
	return copyState(next), nil
}

func (uc *implUseCase) Clear(ctx context.Context) (dream.State, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := dream.State{Plan: dream.Plan{TargetDuration: uc.state.TargetDuration, Steps: []dream.Step{}}}
	if err := uc.store.Delete(ctx, dream.StorageKey); err != nil {
		return dream.State{}, err
	}
	uc.state = next
	return copyState(next), nil
}

func (uc *implUseCase) save(ctx context.Context, p dream.Plan) error {
	if err := uc.store.SetJSON(ctx, dream.StorageKey, p); err != nil {
		uc.l.Errorf(ctx, "dream.save: %v", err)
		return err
	}
	return nil
}
