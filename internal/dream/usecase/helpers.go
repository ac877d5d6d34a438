package usecase

import (
	"slices"

	"vision/internal/dream"
	"vision/pkg/visionapi"
)

// toSteps marks the first proposed step active and the rest pending.
func toSteps(in []visionapi.DreamStep) []dream.Step {
	out := make([]dream.Step, len(in))
	for i, s := range in {
		status := dream.StepPending
		if i == 0 {
			status = dream.StepActive
		}
		subs := make([]dream.SubTask, len(s.SubTasks))
		for j, st := range s.SubTasks {
			subs[j] = dream.SubTask{
				Week:         st.Week,
				Task:         st.Task,
				FreeResource: st.FreeResource,
				PaidResource: st.PaidResource,
			}
		}
		out[i] = dream.Step{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Duration:    s.Duration,
			Status:      status,
			SubTasks:    subs,
		}
	}
	return out
}

func copyState(s dream.State) dream.State {
	steps := make([]dream.Step, len(s.Steps))
	for i, st := range s.Steps {
		st.SubTasks = slices.Clone(st.SubTasks)
		steps[i] = st
	}
	s.Steps = steps
	return s
}
