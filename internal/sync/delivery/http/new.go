package http

import (
	"vision/internal/sync"
	"vision/pkg/log"
)

type handler struct {
	l log.Logger
	r sync.Replicator
}

// New creates a new HTTP handler for replication control.
func New(l log.Logger, r sync.Replicator) *handler {
	return &handler{l: l, r: r}
}
