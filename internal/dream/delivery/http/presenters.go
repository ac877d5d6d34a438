package http

import (
	"vision/internal/dream"
	"vision/pkg/response"
)

type updateReq struct {
	Dream          *string `json:"dream"           binding:"omitempty,max=2000"`
	TargetDuration *string `json:"target_duration" binding:"omitempty,max=100"`
}

func (r updateReq) toInput() dream.UpdateInput {
	return dream.UpdateInput{Dream: r.Dream, TargetDuration: r.TargetDuration}
}

type stepStatusReq struct {
	Status string `json:"status" binding:"required,oneof=pending active completed"`
}

type promoteReq struct {
	StepIDs []int `json:"step_ids"`
}

type subTaskResp struct {
	Week         string `json:"week"`
	Task         string `json:"task"`
	FreeResource string `json:"free_resource,omitempty"`
	PaidResource string `json:"paid_resource,omitempty"`
}

type stepResp struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Duration    string        `json:"duration"`
	Status      string        `json:"status"`
	SubTasks    []subTaskResp `json:"sub_tasks"`
}

type stateResp struct {
	Dream          string             `json:"dream"`
	TargetDuration string             `json:"target_duration"`
	Steps          []stepResp         `json:"steps"`
	Analyzing      bool               `json:"analyzing"`
	Error          string             `json:"error,omitempty"`
	AnalyzedAt     response.Timestamp `json:"analyzed_at"`
}

func (h *handler) newStateResp(st dream.State) stateResp {
	steps := make([]stepResp, len(st.Steps))
	for i, s := range st.Steps {
		subs := make([]subTaskResp, len(s.SubTasks))
		for j, sub := range s.SubTasks {
			subs[j] = subTaskResp{
				Week:         sub.Week,
				Task:         sub.Task,
				FreeResource: sub.FreeResource,
				PaidResource: sub.PaidResource,
			}
		}
		steps[i] = stepResp{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Duration:    s.Duration,
			Status:      string(s.Status),
			SubTasks:    subs,
		}
	}
	return stateResp{
		Dream:          st.Dream,
		TargetDuration: st.TargetDuration,
		Steps:          steps,
		Analyzing:      st.Analyzing,
		Error:          st.LastError,
		AnalyzedAt:     response.Timestamp(st.AnalyzedAt),
	}
}

type promoteResp struct {
	Created []string `json:"created"`
	Existed []string `json:"existed"`
}

func (h *handler) newPromoteResp(out dream.PromoteOutput) promoteResp {
	resp := promoteResp{Created: out.Created, Existed: out.Existed}
	if resp.Created == nil {
		resp.Created = []string{}
	}
	if resp.Existed == nil {
		resp.Existed = []string{}
	}
	return resp
}
