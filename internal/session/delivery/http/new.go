package http

import (
	"vision/internal/session"
	"vision/pkg/log"
)

type handler struct {
	l  log.Logger
	uc session.UseCase
}

// New creates a new HTTP handler for the session.
func New(l log.Logger, uc session.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
