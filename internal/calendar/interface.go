package calendar

import (
	"context"

	"vision/pkg/gcalendar"
)

// UseCase imports upcoming calendar events as tasks.
type UseCase interface {
	Import(ctx context.Context, input ImportInput) (ImportOutput, error)
}

// EventLister is the calendar read API.
type EventLister interface {
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
}
