package footprint

import (
	"strings"
	"time"
)

// ResolveDueDate converts an informal due-time expression into a calendar
// date relative to today. Matching is case-insensitive and substring
// based; "week" resolves to +7 days and "month" to a fixed +30 days with
// or without a "next" qualifier. Anything else is tried as a strict
// YYYY-MM-DD date, and on failure falls back to today. Never errors.
func ResolveDueDate(expr string, today time.Time) time.Time {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	s := strings.ToLower(strings.TrimSpace(expr))
	switch {
	case s == "", strings.Contains(s, "today"), strings.Contains(s, "tonight"):
		return day
	case strings.Contains(s, "tomorrow"):
		return day.AddDate(0, 0, 1)
	case strings.Contains(s, "week"):
		return day.AddDate(0, 0, 7)
	case strings.Contains(s, "month"):
		return day.AddDate(0, 0, 30)
	}

	if d, err := time.ParseInLocation("2006-01-02", s, today.Location()); err == nil {
		return d
	}
	return day
}
