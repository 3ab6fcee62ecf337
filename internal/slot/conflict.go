package slot

// FindConflict returns the first active slot on day that overlaps [start, end),
// skipping the slot whose ID equals excludeID. An empty excludeID skips nothing.
// Ranges are half-open, so slots that merely touch do not conflict.
// Returns nil if there is no conflict. The result is a copy.
func FindConflict(slots []Slot, day Weekday, start, end int, excludeID string) *Slot {
	for _, s := range slots {
		if !s.Active {
			continue
		}
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		if s.Overlaps(day, start, end) {
			found := s
			return &found
		}
	}
	return nil
}

// HasConflict returns true if FindConflict finds anything.
func HasConflict(slots []Slot, day Weekday, start, end int, excludeID string) bool {
	return FindConflict(slots, day, start, end, excludeID) != nil
}

// ByDay groups slots into day columns, preserving input order within a day.
// Slots with an invalid day are dropped.
func ByDay(slots []Slot) [DaysPerWeek][]Slot {
	var days [DaysPerWeek][]Slot
	for _, s := range slots {
		if !s.Day.Valid() {
			continue
		}
		days[s.Day] = append(days[s.Day], s)
	}
	return days
}
