package visionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// request describes one call. Paths are relative to the base URL.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// noRedirect skips the login redirect; credential endpoints report 401 as a plain failure.
	noRedirect bool
	// cached lets a GET be served from the short-lived response cache.
	cached bool
}

// do executes req and decodes a JSON response into out (if out is non-nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	if req.cached && c.cache != nil {
		if raw, ok := c.cache.Get(endpoint); ok {
			return decodeBody(raw, out, req.path)
		}
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", req.path, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", req.path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call vision API %s: %w", req.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		if !req.noRedirect {
			c.redirectToLogin(ctx)
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read vision API %s response: %w", req.path, err)
	}
	if err := decodeBody(raw, out, req.path); err != nil {
		return err
	}
	if req.cached && c.cache != nil {
		c.cache.Add(endpoint, raw)
	}
	return nil
}

// redirectToLogin fires the redirector once per authentication epoch.
func (c *Client) redirectToLogin(ctx context.Context) {
	if c.redirector == nil {
		return
	}
	if c.redirected.CompareAndSwap(false, true) {
		c.redirector.Redirect(ctx, c.loginPath)
	}
}

func decodeBody(raw []byte, out any, path string) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode vision API %s response: %w", path, err)
	}
	return nil
}
