package webhook

import "errors"

// SecurityConfig holds webhook security settings.
type SecurityConfig struct {
	Secret          string   // shared secret for signature verification
	AllowedIPs      []string // IP or CIDR whitelist (optional)
	RateLimitPerMin int      // max deliveries per minute per source, 0 disables
}

type Kind string

const (
	KindIssue       Kind = "issue"
	KindPullRequest Kind = "pull_request"
)

// Event is a GitHub issue or pull request delivery reduced to what a task needs.
type Event struct {
	Kind       Kind
	Action     string // opened, reopened, edited, assigned, closed, merged
	Repository string // owner/name
	Number     int
	Title      string
	Body       string
	URL        string
	Author     string
}

type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeExisted   Outcome = "existed"
	OutcomeUpdated   Outcome = "updated"
	OutcomeCompleted Outcome = "completed"
	OutcomeIgnored   Outcome = "ignored"
)

type ApplyOutput struct {
	TaskID  string
	Outcome Outcome
}

var (
	ErrSecretNotConfigured = errors.New("webhook secret not configured")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrIPNotAllowed        = errors.New("webhook source address not allowed")
	ErrRateLimited         = errors.New("webhook rate limit exceeded")
	ErrUnsupportedEvent    = errors.New("unsupported webhook event")
)
