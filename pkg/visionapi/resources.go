package visionapi

import (
	"context"
	"fmt"
	"net/http"
)

// PreparedTasks lists tasks the assistant has prepared.
func (c *Client) PreparedTasks(ctx context.Context) ([]PreparedTask, error) {
	var out []PreparedTask
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/prepared-tasks"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StartPreparedTask(ctx context.Context, id int) error {
	return c.do(ctx, request{method: http.MethodPost, path: fmt.Sprintf("/api/prepared-tasks/%d/start", id)}, nil)
}

func (c *Client) CompletePreparedTask(ctx context.Context, id int) error {
	return c.do(ctx, request{method: http.MethodPost, path: fmt.Sprintf("/api/prepared-tasks/%d/complete", id)}, nil)
}

// Proposals lists pending autonomous proposals, newest first.
func (c *Client) Proposals(ctx context.Context) ([]Proposal, error) {
	var out []Proposal
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/proposals"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveProposal(ctx context.Context, id int) error {
	return c.do(ctx, request{method: http.MethodPost, path: fmt.Sprintf("/api/proposals/%d/approve", id)}, nil)
}

func (c *Client) RejectProposal(ctx context.Context, id int) error {
	return c.do(ctx, request{method: http.MethodPost, path: fmt.Sprintf("/api/proposals/%d/reject", id)}, nil)
}

// Snapshots lists saved work contexts.
func (c *Client) Snapshots(ctx context.Context) ([]Snapshot, error) {
	var out []Snapshot
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/snapshots"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSnapshot(ctx context.Context, req CreateSnapshotRequest) (Snapshot, error) {
	var out Snapshot
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/snapshots", body: req}, &out); err != nil {
		return Snapshot{}, err
	}
	return out, nil
}

func (c *Client) ResumeSnapshot(ctx context.Context, id int) error {
	return c.do(ctx, request{method: http.MethodPost, path: fmt.Sprintf("/api/snapshots/%d/resume", id)}, nil)
}

// Skills is cached for the configured TTL.
func (c *Client) Skills(ctx context.Context) ([]Skill, error) {
	var out []Skill
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/skills", cached: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WeeklyStats is cached for the configured TTL.
func (c *Client) WeeklyStats(ctx context.Context) (WeeklyStats, error) {
	var out WeeklyStats
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/stats/weekly", cached: true}, &out); err != nil {
		return WeeklyStats{}, err
	}
	return out, nil
}

// MonthlyStats is cached for the configured TTL.
func (c *Client) MonthlyStats(ctx context.Context) (MonthlyStats, error) {
	var out MonthlyStats
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/stats/monthly", cached: true}, &out); err != nil {
		return MonthlyStats{}, err
	}
	return out, nil
}

func (c *Client) LossData(ctx context.Context) (LossData, error) {
	var out LossData
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/loss-data"}, &out); err != nil {
		return LossData{}, err
	}
	return out, nil
}

// AnalyzeDream breaks a long-term goal into ordered steps.
func (c *Client) AnalyzeDream(ctx context.Context, req DreamAnalysisRequest) ([]DreamStep, error) {
	var out []DreamStep
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/dream/analyze", body: req}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Chat sends one message to the assistant and returns its reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var out chatResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/chat", body: chatRequest{Message: message}}, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}
