package session

import (
	"context"

	"vision/pkg/visionapi"
)

// UseCase owns the signed-in user and their API token.
// It is the TokenSource and Redirector of the Vision API client.
type UseCase interface {
	Open(ctx context.Context) error
	Close() error

	// Login stores a token and user obtained elsewhere.
	Login(ctx context.Context, token string, user User) error
	// SignIn exchanges credentials for a token through the auth API.
	SignIn(ctx context.Context, input LoginInput) (User, error)
	SignUp(ctx context.Context, input SignupInput) (User, error)
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, update UserUpdate) (User, error)
	// Refresh reloads the user from the auth API.
	Refresh(ctx context.Context) (User, error)
	// Reload adopts a token another process stored while this one has none.
	// It reports whether a session was picked up.
	Reload(ctx context.Context) (bool, error)
	Current(ctx context.Context) State

	visionapi.TokenSource
	visionapi.Redirector
}

// AuthAPI is the part of the Vision API the session talks to.
type AuthAPI interface {
	Login(ctx context.Context, req visionapi.LoginRequest) (visionapi.TokenResponse, error)
	Signup(ctx context.Context, req visionapi.SignupRequest) (visionapi.TokenResponse, error)
	Me(ctx context.Context) (visionapi.User, error)
	ResetAuth()
}

// Listener hears about sign-in and sign-out.
type Listener interface {
	SessionChanged(ctx context.Context, st State)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, st State)

func (f ListenerFunc) SessionChanged(ctx context.Context, st State) { f(ctx, st) }
