package kv

import (
	"context"
	"time"
)

// Entry is one stored value.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Store is a small persistent key/value table. The last write to a key wins.
type Store interface {
	// Get returns ok=false when key was never set or was deleted.
	Get(ctx context.Context, key string) (e Entry, ok bool, err error)
	Set(ctx context.Context, key, value string) (Entry, error)
	Delete(ctx context.Context, key string) error
	// GetJSON decodes the stored value into out.
	GetJSON(ctx context.Context, key string, out any) (ok bool, err error)
	SetJSON(ctx context.Context, key string, v any) error
}
