package visionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const syncTasksPath = "/api/sync/tasks"

// PullTasks fetches documents changed at or after req.MinUpdatedAt.
func (c *Client) PullTasks(ctx context.Context, req PullRequest) (PullResponse, error) {
	q := url.Values{}
	if !req.MinUpdatedAt.IsZero() {
		q.Set("min_updated_at", req.MinUpdatedAt.UTC().Format(TimeLayout))
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}

	var resp PullResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: syncTasksPath, query: q}, &resp); err != nil {
		return PullResponse{}, err
	}
	return resp, nil
}

// PushTasks sends local changes and returns the server's master copies of any
// documents it refused. An empty or missing body means no conflicts.
func (c *Client) PushTasks(ctx context.Context, docs []TaskDocument) ([]TaskDocument, error) {
	if docs == nil {
		docs = []TaskDocument{}
	}
	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodPost, path: syncTasksPath, body: docs}, &raw); err != nil {
		return nil, err
	}

	// Servers that accept everything may answer with a status object instead of a list.
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}
	var conflicts []TaskDocument
	if err := json.Unmarshal(trimmed, &conflicts); err != nil {
		return nil, fmt.Errorf("failed to decode vision API push conflicts: %w", err)
	}
	return conflicts, nil
}
