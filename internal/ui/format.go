package ui

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rota/internal/grid"
	"github.com/javiermolinar/rota/internal/slot"
)

const (
	timeColWidth = 6
	minColWidth  = 6
	maxColWidth  = 14
)

// printSlotList prints slots grouped by day, earliest first.
func printSlotList(w io.Writer, slots []slot.Slot) {
	first := true
	for day, list := range slot.ByDay(slots) {
		if len(list) == 0 {
			continue
		}
		list = slices.Clone(list)
		slices.SortFunc(list, func(a, b slot.Slot) int {
			return cmp.Compare(a.Start, b.Start)
		})

		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintf(w, "%s\n", formatHeader(slot.Weekday(day).String()))

		for _, s := range list {
			symbol, state := formatActive("●"), ""
			if !s.Active {
				symbol, state = formatInactive("○"), formatInactive(" inactive")
			}
			fmt.Fprintf(w, "  %s %s  cap %-3d %s%s\n",
				symbol,
				s.TimeRange(),
				s.Capacity,
				formatMuted(s.ID),
				state,
			)
		}
	}
}

// colWidthFor fits seven day columns next to the time column.
func colWidthFor(termW int) int {
	return min(max((termW-timeColWidth)/slot.DaysPerWeek, minColWidth), maxColWidth)
}

// fit truncates s to width and pads it with spaces.
func fit(s string, width int) string {
	s = ansi.Truncate(s, width-1, "…")
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}

func dayHeader(colWidth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", timeColWidth))
	for _, d := range slot.Weekdays {
		b.WriteString(formatHeader(fit(d.Short(), colWidth)))
	}
	return b.String()
}

// renderPlan draws the row grid: the time range on a slot's first row, its
// capacity on the second, and a bar below.
func renderPlan(p grid.Plan, colWidth int) string {
	var b strings.Builder
	b.WriteString(dayHeader(colWidth))
	b.WriteByte('\n')

	for row := range p.Rows {
		b.WriteString(fit(p.RowLabel(row), timeColWidth))
		for _, d := range slot.Weekdays {
			cell, ok := p.Columns[d].At(row)
			if !ok || cell.Kind != grid.CellOccupied {
				b.WriteString(formatMuted(fit("·", colWidth)))
				continue
			}
			b.WriteString(styleSlot(cell.Slot, fit(blockLine(cell.Slot, row-cell.Row), colWidth)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// renderBlocks draws slots at continuous positions on a surface height
// lines tall.
func renderBlocks(blocks []grid.Block, w slot.Window, height, colWidth int) string {
	type mark struct {
		s    slot.Slot
		line int
	}
	canvas := make([][slot.DaysPerWeek]*mark, height)
	for _, blk := range blocks {
		for line := blk.Top; line < min(blk.Bottom(), height); line++ {
			canvas[line][blk.Slot.Day] = &mark{s: blk.Slot, line: line - blk.Top}
		}
	}

	var b strings.Builder
	b.WriteString(dayHeader(colWidth))
	b.WriteByte('\n')

	for line := range height {
		b.WriteString(fit(slot.ToTimeString(grid.MinuteAt(w, height, line)), timeColWidth))
		for day := range slot.DaysPerWeek {
			m := canvas[line][day]
			if m == nil {
				b.WriteString(formatMuted(fit("·", colWidth)))
				continue
			}
			b.WriteString(styleSlot(m.s, fit(blockLine(m.s, m.line), colWidth)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// blockLine returns the text on line i of a slot's block.
func blockLine(s slot.Slot, i int) string {
	switch i {
	case 0:
		return s.TimeRange()
	case 1:
		return fmt.Sprintf("cap %d", s.Capacity)
	}
	return "│"
}
