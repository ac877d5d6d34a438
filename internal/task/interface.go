package task

import "context"

// UseCase defines the business logic interface for the local task store.
//
//go:generate mockery --name UseCase
type UseCase interface {
	Create(ctx context.Context, input CreateInput) (CreateOutput, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Detail(ctx context.Context, id string) (DetailOutput, error)
	Update(ctx context.Context, input UpdateInput) (UpdateOutput, error)
	Start(ctx context.Context, id string) (UpdateOutput, error)
	Complete(ctx context.Context, id string) (UpdateOutput, error)
	// Delete soft-deletes: the row stays so the tombstone can replicate.
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, input ReorderInput) (ReorderOutput, error)
}

// ChangeListener is told about every local or replicated change to the task set.
type ChangeListener interface {
	TasksChanged(ctx context.Context, ids []string)
}

// ChangeListenerFunc adapts a function to ChangeListener.
type ChangeListenerFunc func(ctx context.Context, ids []string)

func (f ChangeListenerFunc) TasksChanged(ctx context.Context, ids []string) { f(ctx, ids) }
