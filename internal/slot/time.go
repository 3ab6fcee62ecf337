package slot

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 24 * 60
	// LastMinute is 23:59, the latest representable minute of a day.
	LastMinute = MinutesPerDay - 1
)

// ToMinutes converts "HH:MM" to minutes since midnight.
// A single-digit hour ("9:30") is accepted.
// Returns ErrInvalidFormat for malformed or out-of-range input.
func ToMinutes(t string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(t), ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidFormat, t)
	}
	if !isDigits(hh) || !isDigits(mm) {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidFormat, t)
	}
	hours, _ := strconv.Atoi(hh)
	mins, _ := strconv.Atoi(mm)
	if hours > 23 || mins > 59 {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidFormat, t)
	}
	return hours*60 + mins, nil
}

// MustMinutes is ToMinutes for constants known to be valid. It panics on bad input.
func MustMinutes(t string) int {
	m, err := ToMinutes(t)
	if err != nil {
		panic(err)
	}
	return m
}

// ToTimeString converts minutes since midnight to "HH:MM" format.
func ToTimeString(m int) string {
	m = clamp(m, 0, LastMinute)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// AddMinutes adds delta minutes to an "HH:MM" time, clamping to [00:00, 23:59].
func AddMinutes(t string, delta int) (string, error) {
	m, err := ToMinutes(t)
	if err != nil {
		return "", err
	}
	return ToTimeString(m + delta), nil
}

// IsValidRange returns true if both times parse and start is before end.
func IsValidRange(start, end string) bool {
	s, err := ToMinutes(start)
	if err != nil {
		return false
	}
	e, err := ToMinutes(end)
	if err != nil {
		return false
	}
	return s < e
}

// FormatRange renders a minute range as "HH:MM-HH:MM".
func FormatRange(start, end int) string {
	return ToTimeString(start) + "-" + ToTimeString(end)
}

// Window is the bookable part of a day, in minutes since midnight.
// End is exclusive for slots starting in the window and inclusive as a slot end.
type Window struct {
	Start int
	End   int
}

// DefaultWindow returns the 10:00-22:00 window.
func DefaultWindow() Window {
	return Window{Start: 10 * 60, End: 22 * 60}
}

// NewWindow builds a window from "HH:MM" bounds.
func NewWindow(start, end string) (Window, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return Window{}, fmt.Errorf("window start: %w", err)
	}
	e, err := ToMinutes(end)
	if err != nil {
		return Window{}, fmt.Errorf("window end: %w", err)
	}
	if s >= e {
		return Window{}, fmt.Errorf("window: %w", ErrInvalidRange)
	}
	return Window{Start: s, End: e}, nil
}

// Length returns the window length in minutes.
func (w Window) Length() int {
	return w.End - w.Start
}

// Contains reports whether a minute lies in [Start, End).
func (w Window) Contains(m int) bool {
	return m >= w.Start && m < w.End
}

// ContainsRange reports whether [start, end) lies inside the window.
func (w Window) ContainsRange(start, end int) bool {
	return start >= w.Start && end <= w.End && start < end
}

// Clamp limits m to [Start, End].
func (w Window) Clamp(m int) int {
	return clamp(m, w.Start, w.End)
}

// Snap rounds m to the nearest multiple of step and clamps it into the window.
// Bounds are tightened to the step grid when the window holds at least one
// multiple of step, which keeps Snap idempotent. A window too narrow to hold
// a multiple snaps to its nearest bound.
func (w Window) Snap(m, step int) int {
	if step <= 0 {
		return w.Clamp(m)
	}
	lo := ceilDiv(w.Start, step) * step
	if lo > w.End {
		if m-w.Start <= w.End-m {
			return w.Start
		}
		return w.End
	}
	hi := floorDiv(w.End, step) * step
	return clamp(RoundToStep(m, step), lo, hi)
}

// String returns the window as "HH:MM-HH:MM".
func (w Window) String() string {
	return FormatRange(w.Start, w.End)
}

// RoundToStep rounds m to the nearest multiple of step; ties round up.
func RoundToStep(m, step int) int {
	if step <= 0 {
		return m
	}
	return floorDiv(m+step/2, step) * step
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
