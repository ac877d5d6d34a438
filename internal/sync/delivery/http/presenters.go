package http

import (
	"vision/internal/sync"
	"vision/pkg/response"
)

type checkpointResp struct {
	ID        string             `json:"id"`
	UpdatedAt response.Timestamp `json:"updated_at"`
}

type statusResp struct {
	State      string             `json:"state"`
	LastError  string             `json:"last_error,omitempty"`
	LastPullAt response.Timestamp `json:"last_pull_at"`
	LastPushAt response.Timestamp `json:"last_push_at"`
	LastSyncAt response.Timestamp `json:"last_sync_at"`
	Checkpoint checkpointResp     `json:"checkpoint"`
	Pending    int                `json:"pending"`
}

func (h *handler) newStatusResp(s sync.Status) statusResp {
	return statusResp{
		State:      string(s.State),
		LastError:  s.LastError,
		LastPullAt: response.Timestamp(s.LastPullAt),
		LastPushAt: response.Timestamp(s.LastPushAt),
		LastSyncAt: response.Timestamp(s.LastSyncAt),
		Checkpoint: checkpointResp{
			ID:        s.Checkpoint.ID,
			UpdatedAt: response.Timestamp(s.Checkpoint.UpdatedAt),
		},
		Pending: s.Pending,
	}
}

type runResp struct {
	Pushed    int      `json:"pushed"`
	Conflicts []string `json:"conflicts"`
	Received  int      `json:"received"`
	Applied   []string `json:"applied"`
	Skipped   []string `json:"skipped"`
}

func (h *handler) newRunResp(res sync.CycleResult) runResp {
	return runResp{
		Pushed:    res.Push.Pushed,
		Conflicts: nonNil(res.Push.Conflicts),
		Received:  res.Pull.Received,
		Applied:   nonNil(res.Pull.Applied),
		Skipped:   nonNil(res.Pull.Skipped),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
