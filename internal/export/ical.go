// Package export renders the weekly slot set as an iCalendar feed.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/rota/internal/dateutil"
	"github.com/javiermolinar/rota/internal/slot"
)

// ProductID identifies rota in exported calendars.
const ProductID = "-//rota//weekly slots//EN"

// Options controls how slots are placed on the calendar.
type Options struct {
	// Anchor is any instant in the first week of the recurrence.
	Anchor time.Time
	// Stamp is written as DTSTAMP for slots with no update time. Defaults to now.
	Stamp time.Time
}

var byDay = [slot.DaysPerWeek]rrule.Weekday{
	rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU,
}

// Calendar builds a VCALENDAR with one weekly recurring VEVENT per active slot.
// Inactive slots and slots with an invalid day are skipped.
func Calendar(slots []slot.Slot, opts Options) *ical.Calendar {
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	monday := dateutil.WeekStart(opts.Anchor)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	for _, s := range slots {
		if !s.Active || !s.Day.Valid() {
			continue
		}
		cal.Children = append(cal.Children, event(s, monday, stamp).Component)
	}
	return cal
}

func event(s slot.Slot, monday, stamp time.Time) *ical.Event {
	ev := ical.NewEvent()

	if !s.UpdatedAt.IsZero() {
		stamp = s.UpdatedAt
	}
	ev.Props.SetText(ical.PropUID, s.ID+"@rota")
	ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ev.Props.SetDateTime(ical.PropDateTimeStart, dateutil.At(monday, s.Day, s.Start))
	ev.Props.SetDateTime(ical.PropDateTimeEnd, dateutil.At(monday, s.Day, s.End))
	ev.Props.SetText(ical.PropSummary, Summary(s))
	ev.Props.SetRecurrenceRule(&rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{byDay[s.Day]},
	})
	return ev
}

// Summary is the event title for s.
func Summary(s slot.Slot) string {
	if s.Capacity == 1 {
		return "Open slot (1 place)"
	}
	return fmt.Sprintf("Open slot (%d places)", s.Capacity)
}

// Write encodes the calendar for slots to w.
func Write(w io.Writer, slots []slot.Slot, opts Options) error {
	if err := ical.NewEncoder(w).Encode(Calendar(slots, opts)); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}
