package summary

import (
	"testing"

	"github.com/javiermolinar/rota/internal/slot"
)

func mk(day slot.Weekday, start, end string, capacity int, active bool) slot.Slot {
	return slot.Slot{
		Day:      day,
		Start:    slot.MustMinutes(start),
		End:      slot.MustMinutes(end),
		Capacity: capacity,
		Active:   active,
	}
}

func TestSummarize(t *testing.T) {
	slots := []slot.Slot{
		mk(slot.Monday, "10:00", "12:00", 2, true),
		mk(slot.Monday, "14:00", "14:30", 1, true),
		mk(slot.Tuesday, "10:00", "13:00", 3, true),
		mk(slot.Tuesday, "18:00", "20:00", 1, false),
		mk(slot.Sunday, "21:00", "23:00", 1, true), // clipped to 22:00
	}

	stats := Summarize(slots, slot.DefaultWindow())

	if got := stats.DayStats[slot.Monday]; got.OpenMinutes != 150 || got.PlaceMinutes != 270 || got.ActiveSlots != 2 {
		t.Errorf("monday = %+v", got)
	}
	if got := stats.DayStats[slot.Tuesday]; got.OpenMinutes != 180 || got.InactiveSlots != 1 {
		t.Errorf("tuesday = %+v", got)
	}
	if got := stats.DayStats[slot.Sunday].OpenMinutes; got != 60 {
		t.Errorf("sunday open = %d, want 60", got)
	}

	if got := stats.OpenMinutes(); got != 390 {
		t.Errorf("open minutes = %d, want 390", got)
	}
	if got := stats.PlaceMinutes(); got != 270+540+60 {
		t.Errorf("place minutes = %d, want 870", got)
	}
	if active, inactive := stats.Slots(); active != 4 || inactive != 1 {
		t.Errorf("slots = %d active, %d inactive", active, inactive)
	}
	// 390 of 7*720 minutes.
	if got := stats.CoveragePercent(); got != 7 {
		t.Errorf("coverage = %d%%, want 7%%", got)
	}

	day, minutes, ok := stats.BusiestDay()
	if !ok || day != slot.Tuesday || minutes != 180 {
		t.Errorf("busiest = %v %d %v", day, minutes, ok)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil, slot.DefaultWindow())

	if stats.OpenMinutes() != 0 || stats.CoveragePercent() != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if _, _, ok := stats.BusiestDay(); ok {
		t.Error("empty week has no busiest day")
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{120, "2h"},
		{90, "1h30"},
		{605, "10h05"},
	}
	for _, tt := range tests {
		if got := FormatHours(tt.in); got != tt.want {
			t.Errorf("FormatHours(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
