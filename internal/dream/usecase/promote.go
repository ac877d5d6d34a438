package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"vision/internal/dream"
	"vision/internal/task"

	"github.com/google/uuid"
)

// promoteNamespace scopes the deterministic ids of promoted steps.
var promoteNamespace = uuid.MustParse("6f1c3f0e-5a77-4b55-9c1e-2d0c8a5b7e41")

// PromoteSteps turns steps into tasks. Ids derive from the dream text and step id,
// so promoting the same step twice finds the existing task instead of duplicating it.
func (uc *implUseCase) PromoteSteps(ctx context.Context, input dream.PromoteInput) (dream.PromoteOutput, error) {
	st := uc.Get(ctx)

	var picked []dream.Step
	for _, s := range st.Steps {
		if len(input.StepIDs) > 0 {
			if slices.Contains(input.StepIDs, s.ID) {
				picked = append(picked, s)
			}
			continue
		}
		if s.Status != dream.StepCompleted {
			picked = append(picked, s)
		}
	}
	if len(input.StepIDs) > 0 && len(picked) != len(input.StepIDs) {
		return dream.PromoteOutput{}, dream.ErrStepNotFound
	}
	if len(picked) == 0 {
		return dream.PromoteOutput{}, dream.ErrNoSteps
	}

	var out dream.PromoteOutput
	var errs []error
	for _, s := range picked {
		res, err := uc.tasks.Create(ctx, toCreateInput(st.Dream, s))
		if err != nil {
			uc.l.Errorf(ctx, "dream.PromoteSteps step %d: %v", s.ID, err)
			errs = append(errs, fmt.Errorf("step %d: %w", s.ID, err))
			continue
		}
		if res.Created {
			out.Created = append(out.Created, res.Task.ID)
		} else {
			out.Existed = append(out.Existed, res.Task.ID)
		}
	}
	return out, errors.Join(errs...)
}

func toCreateInput(dreamText string, s dream.Step) task.CreateInput {
	items := make([]string, 0, len(s.SubTasks))
	for _, st := range s.SubTasks {
		item := st.Task
		if st.Week != "" {
			item = st.Week + ": " + st.Task
		}
		items = append(items, item)
	}
	return task.CreateInput{
		ID:            uuid.NewSHA1(promoteNamespace, fmt.Appendf(nil, "%s\x00%d", dreamText, s.ID)).String(),
		Title:         s.Title,
		Description:   s.Description,
		Source:        task.SourceDream,
		EstimatedTime: s.Duration,
		PreparedItems: items,
	}
}
