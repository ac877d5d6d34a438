package usecase

import (
	"time"

	"vision/internal/calendar"
	"vision/internal/task"
	pkgLog "vision/pkg/log"
)

type implUseCase struct {
	l             pkgLog.Logger
	events        calendar.EventLister
	tasks         task.UseCase
	calendarID    string
	lookaheadDays int
	now           func() time.Time
}

// New creates the calendar import use case. events may be nil when no
// credentials are configured; Import then returns ErrNotConfigured.
func New(l pkgLog.Logger, events calendar.EventLister, tasks task.UseCase, calendarID string, lookaheadDays int) calendar.UseCase {
	if calendarID == "" {
		calendarID = calendar.DefaultCalendarID
	}
	if lookaheadDays <= 0 {
		lookaheadDays = calendar.DefaultLookaheadDays
	}
	return &implUseCase{
		l:             l,
		events:        events,
		tasks:         tasks,
		calendarID:    calendarID,
		lookaheadDays: lookaheadDays,
		now:           time.Now,
	}
}
