package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vision/internal/calendar"
	"vision/internal/task"
	"vision/pkg/gcalendar"

	"github.com/google/uuid"
)

// eventNamespace scopes task ids derived from calendar event ids.
var eventNamespace = uuid.MustParse("0b8f7a52-3c1d-4e6f-9a2b-7d5e4c3b2a19")

// Import inserts each upcoming event as a task with source calendar.
// Task ids derive from event ids, so importing the same window twice adds nothing.
func (uc *implUseCase) Import(ctx context.Context, input calendar.ImportInput) (calendar.ImportOutput, error) {
	if uc.events == nil {
		return calendar.ImportOutput{}, calendar.ErrNotConfigured
	}
	days := input.Days
	if days == 0 {
		days = uc.lookaheadDays
	}
	if days < 1 || days > calendar.MaxLookaheadDays {
		return calendar.ImportOutput{}, calendar.ErrInvalidDays
	}
	calendarID := input.CalendarID
	if calendarID == "" {
		calendarID = uc.calendarID
	}

	start := uc.now()
	events, err := uc.events.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: calendarID,
		TimeMin:    start,
		TimeMax:    start.AddDate(0, 0, days),
	})
	if err != nil {
		uc.l.Errorf(ctx, "calendar.Import ListEvents: %v", err)
		return calendar.ImportOutput{}, err
	}

	var out calendar.ImportOutput
	var errs []error
	for _, ev := range events {
		if ev.Status == "cancelled" || strings.TrimSpace(ev.Summary) == "" {
			out.Skipped++
			continue
		}
		res, err := uc.tasks.Create(ctx, toCreateInput(ev))
		if err != nil {
			errs = append(errs, fmt.Errorf("event %s: %w", ev.ID, err))
			continue
		}
		if res.Created {
			out.Created = append(out.Created, res.Task.ID)
		} else {
			out.Existed = append(out.Existed, res.Task.ID)
		}
	}

	uc.l.Infof(ctx, "calendar.Import: %d events, %d created, %d existed, %d skipped",
		len(events), len(out.Created), len(out.Existed), out.Skipped)
	return out, errors.Join(errs...)
}

// TaskID is the task id an event imports as.
func TaskID(eventID string) string {
	return uuid.NewSHA1(eventNamespace, []byte(eventID)).String()
}

func toCreateInput(ev gcalendar.Event) task.CreateInput {
	desc := ev.Description
	if ev.Location != "" {
		desc = strings.TrimSpace(desc + "\n\n" + ev.Location)
	}
	var items []string
	if ev.HtmlLink != "" {
		items = append(items, ev.HtmlLink)
	}
	return task.CreateInput{
		ID:            TaskID(ev.ID),
		Title:         strings.TrimSpace(ev.Summary),
		Description:   desc,
		Source:        task.SourceCalendar,
		EstimatedTime: estimate(ev),
		PreparedItems: items,
	}
}

// estimate renders an event's length the way tasks show it: 15m, 1h, 1h30m, 1d.
func estimate(ev gcalendar.Event) string {
	d := ev.EndTime.Sub(ev.StartTime)
	if ev.AllDay {
		days := int(d.Hours() / 24)
		if days < 1 {
			days = 1
		}
		return fmt.Sprintf("%dd", days)
	}
	if d <= 0 {
		return ""
	}
	d = d.Round(time.Minute)
	h, m := int(d.Hours()), int(d.Minutes())%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}
