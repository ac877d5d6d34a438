package http

import (
	"vision/internal/dream"
	"vision/pkg/log"
)

type handler struct {
	l  log.Logger
	uc dream.UseCase
}

// New creates a new HTTP handler for the dream planner.
func New(l log.Logger, uc dream.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
