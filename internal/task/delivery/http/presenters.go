package http

import (
	"vision/internal/live"
	"vision/internal/task"
	"vision/pkg/response"
)

// --- Request DTOs ---

type createReq struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"          binding:"required,max=500"`
	Description   string   `json:"description"    binding:"max=5000"`
	Status        string   `json:"status"         binding:"omitempty,oneof=ready in-progress completed"`
	Source        string   `json:"source"         binding:"omitempty,oneof=github calendar slack dream manual"`
	EstimatedTime string   `json:"estimated_time" binding:"max=50"`
	PreparedItems []string `json:"prepared_items"`
}

func (r createReq) toInput() task.CreateInput {
	return task.CreateInput{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Status:        task.Status(r.Status),
		Source:        task.Source(r.Source),
		EstimatedTime: r.EstimatedTime,
		PreparedItems: r.PreparedItems,
	}
}

// ---

type listReq struct {
	Status         string `form:"status"          binding:"omitempty,oneof=ready in-progress completed"`
	IncludeDeleted bool   `form:"include_deleted"`
}

func (r listReq) toInput() task.ListInput {
	return task.ListInput{
		Status:         task.Status(r.Status),
		IncludeDeleted: r.IncludeDeleted,
	}
}

// ---

// updateReq has pointer fields so an absent key leaves the stored value alone.
type updateReq struct {
	ID            string    `json:"-"`
	Title         *string   `json:"title"          binding:"omitempty,max=500"`
	Description   *string   `json:"description"    binding:"omitempty,max=5000"`
	Status        *string   `json:"status"         binding:"omitempty,oneof=ready in-progress completed"`
	Source        *string   `json:"source"         binding:"omitempty,oneof=github calendar slack dream manual"`
	EstimatedTime *string   `json:"estimated_time" binding:"omitempty,max=50"`
	PreparedItems *[]string `json:"prepared_items"`
	Position      *int      `json:"position"       binding:"omitempty,min=0"`
}

func (r updateReq) toInput() task.UpdateInput {
	in := task.UpdateInput{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		EstimatedTime: r.EstimatedTime,
		PreparedItems: r.PreparedItems,
		Position:      r.Position,
	}
	if r.Status != nil {
		s := task.Status(*r.Status)
		in.Status = &s
	}
	if r.Source != nil {
		s := task.Source(*r.Source)
		in.Source = &s
	}
	return in
}

// ---

type reorderReq struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

func (r reorderReq) toInput() task.ReorderInput {
	return task.ReorderInput{IDs: r.IDs}
}

// --- Response DTOs ---

type taskResp struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Status        string             `json:"status"`
	Source        string             `json:"source"`
	EstimatedTime string             `json:"estimated_time"`
	PreparedItems []string           `json:"prepared_items"`
	Position      int                `json:"position"`
	Deleted       bool               `json:"deleted"`
	CreatedAt     response.Timestamp `json:"created_at"`
	UpdatedAt     response.Timestamp `json:"updated_at"`
}

func newTaskResp(t task.Task) taskResp {
	items := t.PreparedItems
	if items == nil {
		items = []string{}
	}
	return taskResp{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        string(t.Status),
		Source:        string(t.Source),
		EstimatedTime: t.EstimatedTime,
		PreparedItems: items,
		Position:      t.Position,
		Deleted:       t.Deleted,
		CreatedAt:     response.Timestamp(t.CreatedAt),
		UpdatedAt:     response.Timestamp(t.UpdatedAt),
	}
}

func newTaskResps(tasks []task.Task) []taskResp {
	out := make([]taskResp, len(tasks))
	for i, t := range tasks {
		out[i] = newTaskResp(t)
	}
	return out
}

type createResp struct {
	Task    taskResp `json:"task"`
	Created bool     `json:"created"`
}

func (h *handler) newCreateResp(out task.CreateOutput) createResp {
	return createResp{Task: newTaskResp(out.Task), Created: out.Created}
}

type listResp struct {
	Tasks []taskResp `json:"tasks"`
	Total int        `json:"total"`
}

func (h *handler) newListResp(out task.ListOutput) listResp {
	return listResp{Tasks: newTaskResps(out.Tasks), Total: out.Total}
}

type detailResp struct {
	Task taskResp `json:"task"`
}

func (h *handler) newDetailResp(out task.DetailOutput) detailResp {
	return detailResp{Task: newTaskResp(out.Task)}
}

func (h *handler) newUpdateResp(out task.UpdateOutput) detailResp {
	return detailResp{Task: newTaskResp(out.Task)}
}

type reorderResp struct {
	Changed []string `json:"changed"`
}

func (h *handler) newReorderResp(out task.ReorderOutput) reorderResp {
	changed := out.Changed
	if changed == nil {
		changed = []string{}
	}
	return reorderResp{Changed: changed}
}

// streamFrame is one websocket message: the whole visible list after a change.
type streamFrame struct {
	Type    string             `json:"type"`
	Tasks   []taskResp         `json:"tasks"`
	Changed []string           `json:"changed,omitempty"`
	At      response.Timestamp `json:"at"`
}

func newStreamFrame(s live.Snapshot) streamFrame {
	return streamFrame{
		Type:    "tasks",
		Tasks:   newTaskResps(s.Tasks),
		Changed: s.Changed,
		At:      response.Timestamp(s.At),
	}
}
