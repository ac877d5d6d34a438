package preferences

import "errors"

var (
	ErrInvalidTheme      = errors.New("theme must be dark, light or system")
	ErrInvalidLocale     = errors.New("locale must be ja or en")
	ErrInvalidHourlyRate = errors.New("hourly rate must not be negative")
)
