package http

import (
	"vision/internal/calendar"
	"vision/pkg/log"
)

type handler struct {
	l  log.Logger
	uc calendar.UseCase
}

// New creates a new HTTP handler for calendar import.
func New(l log.Logger, uc calendar.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
