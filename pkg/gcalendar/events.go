package gcalendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

const allDayLayout = "2006-01-02"

// ListEvents returns single (expanded) events in [TimeMin, TimeMax) ordered by start time.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	calendarID := req.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	call := c.service.Events.List(calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		ShowDeleted(false)
	if !req.TimeMin.IsZero() {
		call = call.TimeMin(req.TimeMin.Format(time.RFC3339))
	}
	if !req.TimeMax.IsZero() {
		call = call.TimeMax(req.TimeMax.Format(time.RFC3339))
	}
	if req.MaxResults > 0 {
		call = call.MaxResults(req.MaxResults)
	}

	var out []Event
	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			ev, err := toEvent(item)
			if err != nil {
				return err
			}
			out = append(out, ev)
		}
		if req.MaxResults > 0 && int64(len(out)) >= req.MaxResults {
			return errStopPaging
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopPaging) {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	return out, nil
}

var errStopPaging = errors.New("gcalendar: enough events")

func toEvent(item *calendar.Event) (Event, error) {
	ev := Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
		HtmlLink:    item.HtmlLink,
		Status:      item.Status,
	}
	var err error
	if ev.StartTime, ev.AllDay, err = parseEventTime(item.Start); err != nil {
		return Event{}, fmt.Errorf("event %s start: %w", item.Id, err)
	}
	if ev.EndTime, _, err = parseEventTime(item.End); err != nil {
		return Event{}, fmt.Errorf("event %s end: %w", item.Id, err)
	}
	return ev, nil
}

func parseEventTime(dt *calendar.EventDateTime) (time.Time, bool, error) {
	if dt == nil {
		return time.Time{}, false, nil
	}
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		return t, false, err
	}
	if dt.Date != "" {
		t, err := time.Parse(allDayLayout, dt.Date)
		return t, true, err
	}
	return time.Time{}, false, nil
}
