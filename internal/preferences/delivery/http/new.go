package http

import (
	"vision/internal/preferences"
	"vision/pkg/log"
)

type handler struct {
	l  log.Logger
	uc preferences.UseCase
}

// New creates a new HTTP handler for preferences.
func New(l log.Logger, uc preferences.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
