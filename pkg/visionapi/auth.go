package visionapi

import (
	"context"
	"net/http"
)

// Login exchanges credentials for an access token. Bad credentials return
// ErrUnauthorized without triggering the login redirect.
func (c *Client) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	var resp TokenResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: req, noRedirect: true}, &resp)
	if err != nil {
		return TokenResponse{}, err
	}
	return resp, nil
}

// Signup creates an account and returns its access token.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (TokenResponse, error) {
	var resp TokenResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/signup", body: req, noRedirect: true}, &resp)
	if err != nil {
		return TokenResponse{}, err
	}
	return resp, nil
}

// Me returns the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me"}, &u); err != nil {
		return User{}, err
	}
	return u, nil
}
