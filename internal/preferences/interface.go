package preferences

import "context"

// UseCase holds theme, locale and user preferences.
type UseCase interface {
	Open(ctx context.Context) error
	Close() error
	Get(ctx context.Context) Settings
	Update(ctx context.Context, input UpdateInput) (Settings, error)
	// Reset restores every default.
	Reset(ctx context.Context) (Settings, error)
}
