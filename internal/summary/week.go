// Package summary aggregates weekly slot statistics.
package summary

import (
	"fmt"

	"github.com/javiermolinar/rota/internal/slot"
)

// DayStats holds the totals of one day column.
type DayStats struct {
	OpenMinutes   int // active slots only
	PlaceMinutes  int // capacity * minutes, active slots only
	ActiveSlots   int
	InactiveSlots int
}

// WeekStats holds aggregated statistics for the week.
type WeekStats struct {
	Window   slot.Window
	DayStats [slot.DaysPerWeek]DayStats
}

// Summarize counts slots per day. Only the part of a slot inside w counts
// toward open time.
func Summarize(slots []slot.Slot, w slot.Window) WeekStats {
	stats := WeekStats{Window: w}
	for _, s := range slots {
		if !s.Day.Valid() {
			continue
		}
		ds := &stats.DayStats[s.Day]
		if !s.Active {
			ds.InactiveSlots++
			continue
		}
		ds.ActiveSlots++
		minutes := max(w.Clamp(s.End)-w.Clamp(s.Start), 0)
		ds.OpenMinutes += minutes
		ds.PlaceMinutes += minutes * s.Capacity
	}
	return stats
}

// OpenMinutes returns the active minutes of the week.
func (s WeekStats) OpenMinutes() int {
	total := 0
	for _, ds := range s.DayStats {
		total += ds.OpenMinutes
	}
	return total
}

// PlaceMinutes returns the capacity-weighted active minutes of the week.
func (s WeekStats) PlaceMinutes() int {
	total := 0
	for _, ds := range s.DayStats {
		total += ds.PlaceMinutes
	}
	return total
}

// Slots returns the active and inactive slot counts.
func (s WeekStats) Slots() (active, inactive int) {
	for _, ds := range s.DayStats {
		active += ds.ActiveSlots
		inactive += ds.InactiveSlots
	}
	return active, inactive
}

// CoveragePercent returns the share of the weekly window covered by active slots.
func (s WeekStats) CoveragePercent() int {
	total := s.Window.Length() * slot.DaysPerWeek
	if total <= 0 {
		return 0
	}
	return s.OpenMinutes() * 100 / total
}

// BusiestDay returns the day with the most open minutes. ok is false when
// no day has any.
func (s WeekStats) BusiestDay() (day slot.Weekday, minutes int, ok bool) {
	for i, ds := range s.DayStats {
		if ds.OpenMinutes > minutes {
			day, minutes, ok = slot.Weekday(i), ds.OpenMinutes, true
		}
	}
	return day, minutes, ok
}

// FormatHours renders minutes as "2h", "1h30" or "45m".
func FormatHours(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02d", h, m)
	}
}
