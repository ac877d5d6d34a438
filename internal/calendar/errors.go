package calendar

import "errors"

var (
	ErrNotConfigured = errors.New("google calendar is not configured")
	ErrInvalidDays   = errors.New("days must be between 1 and 90")
)
