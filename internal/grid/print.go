package grid

import (
	"strings"

	"github.com/javiermolinar/rota/internal/slot"
)

// Debug/Print helpers. Occupied rows print a letter per slot in placement
// order (upper case active, lower case inactive); empty rows print '-'.

// PrintDay returns a compact string for a single day.
func (p Plan) PrintDay(day slot.Weekday) string {
	if !day.Valid() {
		return ""
	}
	letters := p.letters()
	var sb strings.Builder
	for row := 0; row < p.Rows; row++ {
		cell, ok := p.Columns[day].At(row)
		if !ok || cell.Kind == CellEmpty {
			sb.WriteRune('-')
			continue
		}
		sb.WriteRune(letters[cellKey{day, cell.Row}])
	}
	return sb.String()
}

// Print returns a multi-line visualization of the plan for debugging.
func (p Plan) Print() string {
	var sb strings.Builder
	for _, d := range slot.Weekdays {
		sb.WriteString(d.Short())
		sb.WriteString(": ")
		sb.WriteString(p.PrintDay(d))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// String returns the days joined by "|".
func (p Plan) String() string {
	parts := make([]string, 0, slot.DaysPerWeek)
	for _, d := range slot.Weekdays {
		parts = append(parts, p.PrintDay(d))
	}
	return strings.Join(parts, "|")
}

type cellKey struct {
	day slot.Weekday
	row int
}

func (p Plan) letters() map[cellKey]rune {
	out := make(map[cellKey]rune)
	n := 0
	for _, d := range slot.Weekdays {
		for _, cell := range p.Columns[d].Occupied() {
			letter := rune('A' + n%26)
			if !cell.Slot.Active {
				letter = rune('a' + n%26)
			}
			out[cellKey{d, cell.Row}] = letter
			n++
		}
	}
	return out
}
