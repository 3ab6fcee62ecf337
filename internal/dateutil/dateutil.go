// Package dateutil maps weekly slots onto calendar dates.
package dateutil

import (
	"errors"
	"strings"
	"time"

	"github.com/javiermolinar/rota/internal/slot"
)

// ErrInvalidDateFormat is returned for dates that are not YYYY-MM-DD.
var ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")

// ParseDate parses a date string in YYYY-MM-DD format in loc.
// If the string is empty, returns today's date.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if s == "" {
		return TruncateToDay(time.Now().In(loc)), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseAnchor resolves the week an export starts in:
//   - Empty string or "this-week": the week containing relativeTo
//   - "next-week": the week after
//   - Absolute date: "2025-01-15" (any day of the wanted week)
//
// The result is always the Monday of that week.
func ParseAnchor(s string, relativeTo time.Time) (time.Time, error) {
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "this-week", "today":
		return WeekStart(relativeTo), nil
	case "next-week":
		return WeekStart(relativeTo).AddDate(0, 0, 7), nil
	}

	t, err := ParseDate(input, relativeTo.Location())
	if err != nil {
		return time.Time{}, err
	}
	return WeekStart(t), nil
}

// WeekStart returns midnight on the Monday of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// At returns the instant minute minutes after midnight on day of the week
// starting at monday. Wall-clock arithmetic keeps DST days correct.
func At(monday time.Time, day slot.Weekday, minute int) time.Time {
	return time.Date(monday.Year(), monday.Month(), monday.Day()+int(day), 0, minute, 0, 0, monday.Location())
}
