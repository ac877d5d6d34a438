package session

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrMissingToken     = errors.New("token is required")
	ErrMissingCreds     = errors.New("email and password are required")
	ErrNoAuthAPI        = errors.New("no auth API configured")
)
