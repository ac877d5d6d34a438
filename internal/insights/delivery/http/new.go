package http

import (
	"vision/internal/insights"
	"vision/pkg/log"
)

type handler struct {
	l  log.Logger
	uc insights.UseCase
}

// New creates a new HTTP handler for remote statistics.
func New(l log.Logger, uc insights.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
