package calendar

const (
	DefaultCalendarID    = "primary"
	DefaultLookaheadDays = 7
	MaxLookaheadDays     = 90
)

type ImportInput struct {
	CalendarID string
	Days       int // window starting now; 0 uses the configured default
}

type ImportOutput struct {
	Created []string
	Existed []string
	Skipped int // cancelled or untitled events
}
