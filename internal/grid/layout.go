// Package grid places a week of slots onto day columns and time rows.
// It produces plans only; rendering lives with the caller.
package grid

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/rota/internal/slot"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid grid config")

// Config describes the visible window and the row quantization.
type Config struct {
	WindowStart int // minutes since midnight
	WindowEnd   int // minutes since midnight
	RowUnit     int // minutes per row
}

// DefaultConfig is a 10:00-22:00 window with hourly rows.
func DefaultConfig() Config {
	w := slot.DefaultWindow()
	return Config{WindowStart: w.Start, WindowEnd: w.End, RowUnit: 60}
}

// NewConfig builds a Config from a window and a row unit.
func NewConfig(w slot.Window, rowUnit int) Config {
	return Config{WindowStart: w.Start, WindowEnd: w.End, RowUnit: rowUnit}
}

// Validate checks that the window is ordered, inside one day, and the unit is positive.
func (c Config) Validate() error {
	if c.RowUnit <= 0 {
		return fmt.Errorf("%w: row unit must be positive, got %d", ErrInvalidConfig, c.RowUnit)
	}
	if c.WindowStart < 0 || c.WindowEnd > slot.MinutesPerDay {
		return fmt.Errorf("%w: window %s is outside the day", ErrInvalidConfig, c.Window())
	}
	if c.WindowStart >= c.WindowEnd {
		return fmt.Errorf("%w: window start must be before end", ErrInvalidConfig)
	}
	return nil
}

// Window returns the configured window.
func (c Config) Window() slot.Window {
	return slot.Window{Start: c.WindowStart, End: c.WindowEnd}
}

// Rows returns the number of rows in the window. A trailing partial unit
// gets its own row. Returns 0 for an unusable config.
func (c Config) Rows() int {
	if c.RowUnit <= 0 || c.WindowEnd <= c.WindowStart {
		return 0
	}
	return (c.WindowEnd - c.WindowStart + c.RowUnit - 1) / c.RowUnit
}

// RowStart returns the time boundary at the top of a row.
func (c Config) RowStart(row int) int {
	return c.WindowStart + row*c.RowUnit
}

// RowEnd returns the boundary at the bottom of a row, capped at the window end.
func (c Config) RowEnd(row int) int {
	return min(c.RowStart(row)+c.RowUnit, c.WindowEnd)
}

// RowOf returns the row containing minute m, or -1 outside the window.
func (c Config) RowOf(m int) int {
	if c.RowUnit <= 0 || !c.Window().Contains(m) {
		return -1
	}
	return (m - c.WindowStart) / c.RowUnit
}

// CellKind tags a cell as empty or occupied.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellOccupied
)

func (k CellKind) String() string {
	if k == CellOccupied {
		return "occupied"
	}
	return "empty"
}

// Cell is one emitted unit of a column. Occupied cells cover RowSpan rows
// starting at Row; empty cells always cover one row.
type Cell struct {
	Kind    CellKind
	Slot    slot.Slot // zero for empty cells
	Row     int
	RowSpan int
}

// Covers reports whether the cell covers row.
func (c Cell) Covers(row int) bool {
	return row >= c.Row && row < c.Row+c.RowSpan
}

// Column is the ordered cell sequence of one day.
type Column struct {
	Day   slot.Weekday
	Cells []Cell
}

// At returns the cell covering row.
func (c Column) At(row int) (Cell, bool) {
	for _, cell := range c.Cells {
		if cell.Covers(row) {
			return cell, true
		}
		if cell.Row > row {
			break
		}
	}
	return Cell{}, false
}

// Occupied returns the occupied cells of the column.
func (c Column) Occupied() []Cell {
	var out []Cell
	for _, cell := range c.Cells {
		if cell.Kind == CellOccupied {
			out = append(out, cell)
		}
	}
	return out
}

// Plan is the placement of a week of slots.
type Plan struct {
	Config   Config
	Rows     int
	Columns  [slot.DaysPerWeek]Column
	Unplaced []slot.Slot // slots that start outside the window or under another slot's span
}

// SlotAt returns the slot covering (day, row), if any.
func (p Plan) SlotAt(day slot.Weekday, row int) (slot.Slot, bool) {
	if !day.Valid() {
		return slot.Slot{}, false
	}
	cell, ok := p.Columns[day].At(row)
	if !ok || cell.Kind != CellOccupied {
		return slot.Slot{}, false
	}
	return cell.Slot, true
}

// RowLabel returns the "HH:MM" label of a row.
func (p Plan) RowLabel(row int) string {
	return slot.ToTimeString(p.Config.RowStart(row))
}

// Layout places slots onto the grid in a single top-to-bottom pass.
//
// Each day column keeps its own count of rows still covered by an earlier
// span. On an uncovered row, the slot starting on the row boundary is placed;
// failing that, a slot starting inside the row. Active slots win ties.
// RowSpan is ceil(max(unit, end-rowStart)/unit), clamped to the remaining rows.
func Layout(slots []slot.Slot, cfg Config) Plan {
	rows := cfg.Rows()
	plan := Plan{Config: cfg, Rows: rows}

	days := slot.ByDay(slots)
	var placed [slot.DaysPerWeek][]bool
	var skip [slot.DaysPerWeek]int
	for d := range days {
		placed[d] = make([]bool, len(days[d]))
		plan.Columns[d] = Column{Day: slot.Weekday(d), Cells: make([]Cell, 0, rows)}
	}

	for row := 0; row < rows; row++ {
		rowStart, rowEnd := cfg.RowStart(row), cfg.RowEnd(row)

		for d := range days {
			if skip[d] > 0 {
				skip[d]--
				continue
			}

			i := pick(days[d], placed[d], rowStart, rowEnd)
			if i < 0 {
				plan.Columns[d].Cells = append(plan.Columns[d].Cells, Cell{Kind: CellEmpty, Row: row, RowSpan: 1})
				continue
			}

			s := days[d][i]
			placed[d][i] = true
			span := ceilDiv(max(cfg.RowUnit, s.End-rowStart), cfg.RowUnit)
			span = min(span, rows-row)
			plan.Columns[d].Cells = append(plan.Columns[d].Cells, Cell{
				Kind:    CellOccupied,
				Slot:    s,
				Row:     row,
				RowSpan: span,
			})
			skip[d] = span - 1
		}
	}

	for d := range days {
		for i, s := range days[d] {
			if !placed[d][i] {
				plan.Unplaced = append(plan.Unplaced, s)
			}
		}
	}
	for _, s := range slots {
		if !s.Day.Valid() {
			plan.Unplaced = append(plan.Unplaced, s)
		}
	}

	return plan
}

// pick returns the index of the slot to place on a row starting at rowStart,
// or -1. Exact boundary matches beat in-row starts; active beats inactive;
// otherwise list order decides.
func pick(day []slot.Slot, placed []bool, rowStart, rowEnd int) int {
	best, bestRank := -1, 0
	for i, s := range day {
		if placed[i] || s.Start < rowStart || s.Start >= rowEnd || s.End <= s.Start {
			continue
		}
		rank := 1
		if s.Start == rowStart {
			rank += 2
		}
		if s.Active {
			rank++
		}
		if rank > bestRank {
			best, bestRank = i, rank
		}
	}
	return best
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
