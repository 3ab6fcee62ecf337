// Package slot defines the weekly slot model, time canonicalization and
// conflict detection for rota.
package slot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is a day column of the weekly grid. Monday is 0, Sunday is 6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the number of day columns.
const DaysPerWeek = 7

// Weekdays lists the days in canonical column order.
var Weekdays = [DaysPerWeek]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Valid returns true if d is one of the seven days.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the full day name.
func (d Weekday) String() string {
	if !d.Valid() {
		return "Weekday(" + strconv.Itoa(int(d)) + ")"
	}
	return weekdayNames[d]
}

// Short returns the three-letter day name.
func (d Weekday) Short() string {
	if !d.Valid() {
		return "???"
	}
	return weekdayNames[d][:3]
}

// TimeWeekday converts to the standard library weekday.
func (d Weekday) TimeWeekday() time.Weekday {
	return time.Weekday((int(d) + 1) % 7)
}

// FromTimeWeekday converts a standard library weekday.
func FromTimeWeekday(w time.Weekday) Weekday {
	return Weekday((int(w) + 6) % 7)
}

// ParseWeekday accepts full or three-letter names in any case, or 1-7 (Monday=1).
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= DaysPerWeek {
			return Weekday(n - 1), nil
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}
	for i, name := range weekdayNames {
		lower := strings.ToLower(name)
		if s == lower || s == lower[:3] {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// Slot is a recurring weekly bookable interval.
type Slot struct {
	ID        string  // empty until persisted
	Day       Weekday // column
	Start     int     // minutes since midnight
	End       int     // minutes since midnight, exclusive
	Capacity  int
	Active    bool
	UpdatedAt time.Time
}

// Duration returns the slot length in minutes.
func (s Slot) Duration() int {
	return s.End - s.Start
}

// TimeRange returns "HH:MM-HH:MM".
func (s Slot) TimeRange() string {
	return FormatRange(s.Start, s.End)
}

// Overlaps reports whether the slot intersects [start, end) on day.
// Two ranges overlap if: start1 < end2 AND start2 < end1.
func (s Slot) Overlaps(day Weekday, start, end int) bool {
	return s.Day == day && s.Start < end && start < s.End
}

// String returns a compact one-line description.
func (s Slot) String() string {
	state := "active"
	if !s.Active {
		state = "inactive"
	}
	return fmt.Sprintf("%s %s cap %d (%s)", s.Day.Short(), s.TimeRange(), s.Capacity, state)
}
