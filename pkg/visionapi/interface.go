package visionapi

import "context"

// TokenSource yields the bearer token for outgoing requests. An empty token means anonymous.
type TokenSource interface {
	Token() string
}

// Redirector is told where the user must go when the remote rejects their credentials.
type Redirector interface {
	Redirect(ctx context.Context, path string)
}

// IVision defines the remote Vision API surface used by the agent.
// Implementations are safe for concurrent use.
type IVision interface {
	// Replication
	PullTasks(ctx context.Context, req PullRequest) (PullResponse, error)
	PushTasks(ctx context.Context, docs []TaskDocument) ([]TaskDocument, error)

	// Auth
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Signup(ctx context.Context, req SignupRequest) (TokenResponse, error)
	Me(ctx context.Context) (User, error)

	// Prepared tasks
	PreparedTasks(ctx context.Context) ([]PreparedTask, error)
	StartPreparedTask(ctx context.Context, id int) error
	CompletePreparedTask(ctx context.Context, id int) error

	// Proposals
	Proposals(ctx context.Context) ([]Proposal, error)
	ApproveProposal(ctx context.Context, id int) error
	RejectProposal(ctx context.Context, id int) error

	// Snapshots
	Snapshots(ctx context.Context) ([]Snapshot, error)
	CreateSnapshot(ctx context.Context, req CreateSnapshotRequest) (Snapshot, error)
	ResumeSnapshot(ctx context.Context, id int) error

	// Insights
	Skills(ctx context.Context) ([]Skill, error)
	WeeklyStats(ctx context.Context) (WeeklyStats, error)
	MonthlyStats(ctx context.Context) (MonthlyStats, error)
	LossData(ctx context.Context) (LossData, error)

	// AI
	AnalyzeDream(ctx context.Context, req DreamAnalysisRequest) ([]DreamStep, error)
	Chat(ctx context.Context, message string) (string, error)

	// ResetAuth re-arms the 401 redirect and drops cached responses.
	ResetAuth()
}
