package session

import "time"

// Storage keys shared with the web client.
const (
	TokenKey = "vision-token"
	UserKey  = "vision-user"

	DefaultLoginPath = "/login"
)

type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// State is a snapshot of the session.
type State struct {
	User          *User
	Authenticated bool
	// LoginRequired is set when the remote rejected the token or the user logged out.
	LoginRequired bool
	LoginPath     string
	ExpiresAt     time.Time // zero for opaque or non-expiring tokens
}

type LoginInput struct {
	Email    string
	Password string
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

// UserUpdate carries a partial user update; nil fields are kept.
type UserUpdate struct {
	Email *string
	Name  *string
}
