package grid

import (
	"cmp"
	"slices"

	"github.com/javiermolinar/rota/internal/slot"
)

// Block is a slot placed with continuous coordinates. Top and Height are in
// output units (lines, pixels) of a surface Lines tall.
type Block struct {
	Slot   slot.Slot
	Top    int
	Height int
}

// Bottom returns the first unit below the block.
func (b Block) Bottom() int {
	return b.Top + b.Height
}

// Blocks maps each slot's [Start, End) proportionally onto a surface of
// height units covering the window, grouped by day in column order.
//
// Both edges round down, so slots sharing an edge share a unit boundary.
// A block is at least one unit tall and starts no higher than the bottom of
// the block above it. Slots outside the window, slots overlapping an already
// placed slot in time, and slots pushed off the surface are returned as
// unplaced. Ties on start go to active slots, then list order.
func Blocks(slots []slot.Slot, w slot.Window, height int) ([]Block, []slot.Slot) {
	if height <= 0 || w.Length() <= 0 {
		return nil, slices.Clone(slots)
	}
	offset := func(m int) int {
		return (m - w.Start) * height / w.Length()
	}

	var (
		out      []Block
		unplaced []slot.Slot
	)
	for _, day := range slot.ByDay(slots) {
		day = slices.Clone(day)
		slices.SortStableFunc(day, func(a, b slot.Slot) int {
			if c := cmp.Compare(a.Start, b.Start); c != 0 {
				return c
			}
			return cmp.Compare(activeRank(a), activeRank(b))
		})

		lastEnd, lastBottom := w.Start, 0
		for _, s := range day {
			start, end := w.Clamp(s.Start), w.Clamp(s.End)
			if start >= end || start < lastEnd {
				unplaced = append(unplaced, s)
				continue
			}
			top := max(offset(start), lastBottom)
			if top >= height {
				unplaced = append(unplaced, s)
				continue
			}
			bottom := min(max(offset(end), top+1), height)
			out = append(out, Block{Slot: s, Top: top, Height: bottom - top})
			lastEnd, lastBottom = end, bottom
		}
	}
	for _, s := range slots {
		if !s.Day.Valid() {
			unplaced = append(unplaced, s)
		}
	}
	return out, unplaced
}

func activeRank(s slot.Slot) int {
	if s.Active {
		return 0
	}
	return 1
}

// MinuteAt maps a surface offset back to the minute at its top edge.
func MinuteAt(w slot.Window, height, offset int) int {
	if height <= 0 {
		return w.Start
	}
	offset = min(max(offset, 0), height)
	return w.Start + offset*w.Length()/height
}
