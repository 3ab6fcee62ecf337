package grid

import (
	"testing"

	"github.com/javiermolinar/rota/internal/slot"
)

func TestBlocks(t *testing.T) {
	w := slot.DefaultWindow() // 720 minutes
	slots := []slot.Slot{
		mkSlot("hour", slot.Monday, "10:00", "11:00"),
		mkSlot("early", slot.Tuesday, "09:00", "10:30"),
		mkSlot("tail", slot.Tuesday, "21:50", "23:00"),
		mkSlot("gone", slot.Tuesday, "23:00", "23:30"),
		mkSlot("tiny", slot.Wednesday, "12:05", "12:10"),
	}

	blocks, unplaced := Blocks(slots, w, 24)

	want := map[string][2]int{
		"hour":  {0, 2},
		"early": {0, 1},
		"tail":  {23, 1},
		"tiny":  {4, 1},
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %+v", len(blocks), len(want), blocks)
	}
	for _, b := range blocks {
		exp, ok := want[b.Slot.ID]
		if !ok {
			t.Errorf("unexpected block for %s", b.Slot.ID)
			continue
		}
		if b.Top != exp[0] || b.Height != exp[1] {
			t.Errorf("%s: top=%d height=%d, want top=%d height=%d", b.Slot.ID, b.Top, b.Height, exp[0], exp[1])
		}
		if b.Bottom() > 24 {
			t.Errorf("%s extends past the surface", b.Slot.ID)
		}
	}
	if len(unplaced) != 1 || unplaced[0].ID != "gone" {
		t.Errorf("unplaced = %v, want the slot outside the window", unplaced)
	}
}

func TestBlocks_AdjacentInsideUnit(t *testing.T) {
	w := slot.DefaultWindow() // 30 minutes per unit at height 24
	tests := []struct {
		name string
		a, b [2]string
		want [2][2]int // top, bottom
	}{
		{
			name: "short first slot",
			a:    [2]string{"10:00", "10:20"},
			b:    [2]string{"10:20", "11:00"},
			want: [2][2]int{{0, 1}, {1, 2}},
		},
		{
			name: "edge inside a unit",
			a:    [2]string{"10:00", "10:45"},
			b:    [2]string{"10:45", "11:30"},
			want: [2][2]int{{0, 1}, {1, 3}},
		},
		{
			name: "edge on a unit boundary",
			a:    [2]string{"12:00", "13:00"},
			b:    [2]string{"13:00", "14:00"},
			want: [2][2]int{{4, 6}, {6, 8}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := []slot.Slot{
				mkSlot("b", slot.Monday, tt.b[0], tt.b[1]),
				mkSlot("a", slot.Monday, tt.a[0], tt.a[1]),
			}
			blocks, unplaced := Blocks(slots, w, 24)
			if len(blocks) != 2 || len(unplaced) != 0 {
				t.Fatalf("blocks = %+v, unplaced = %v", blocks, unplaced)
			}
			if blocks[0].Slot.ID != "a" {
				t.Fatalf("blocks not ordered by start: %+v", blocks)
			}
			for i, b := range blocks {
				if b.Top != tt.want[i][0] || b.Bottom() != tt.want[i][1] {
					t.Errorf("%s = [%d,%d), want [%d,%d)", b.Slot.ID, b.Top, b.Bottom(), tt.want[i][0], tt.want[i][1])
				}
			}
			if blocks[0].Bottom() > blocks[1].Top {
				t.Errorf("touching slots overlap on the surface: %+v", blocks)
			}
		})
	}
}

func TestBlocks_NoOverlapForDenseDay(t *testing.T) {
	w := slot.DefaultWindow()
	var slots []slot.Slot
	for m := w.Start; m < w.Start+120; m += 10 {
		slots = append(slots, slot.Slot{ID: slot.ToTimeString(m), Day: slot.Friday, Start: m, End: m + 10, Capacity: 1, Active: true})
	}

	blocks, unplaced := Blocks(slots, w, 24)
	if len(blocks)+len(unplaced) != len(slots) {
		t.Fatalf("placed %d + unplaced %d != %d", len(blocks), len(unplaced), len(slots))
	}
	for i := 1; i < len(blocks); i++ {
		if blocks[i-1].Bottom() > blocks[i].Top {
			t.Errorf("%s [%d,%d) overlaps %s [%d,%d)",
				blocks[i-1].Slot.ID, blocks[i-1].Top, blocks[i-1].Bottom(),
				blocks[i].Slot.ID, blocks[i].Top, blocks[i].Bottom())
		}
	}
}

func TestBlocks_TimeOverlapUnplaced(t *testing.T) {
	old := mkSlot("old", slot.Thursday, "12:00", "14:00")
	old.Active = false
	slots := []slot.Slot{
		old,
		mkSlot("new", slot.Thursday, "12:00", "13:00"),
		mkSlot("late", slot.Thursday, "13:30", "15:00"),
	}

	blocks, unplaced := Blocks(slots, slot.DefaultWindow(), 12)
	if len(blocks) != 2 || blocks[0].Slot.ID != "new" || blocks[1].Slot.ID != "late" {
		t.Errorf("blocks = %+v, want new then late", blocks)
	}
	if len(unplaced) != 1 || unplaced[0].ID != "old" {
		t.Errorf("unplaced = %v, want the inactive slot", unplaced)
	}
}

func TestBlocks_Degenerate(t *testing.T) {
	slots := []slot.Slot{mkSlot("a", slot.Monday, "10:00", "11:00")}
	if got, unplaced := Blocks(slots, slot.DefaultWindow(), 0); got != nil || len(unplaced) != 1 {
		t.Errorf("zero height should place nothing, got %v, unplaced %v", got, unplaced)
	}
	if got, _ := Blocks(slots, slot.Window{Start: 600, End: 600}, 10); got != nil {
		t.Errorf("empty window should give no blocks, got %v", got)
	}
}

func TestBlocks_ColumnOrder(t *testing.T) {
	slots := []slot.Slot{
		mkSlot("c", slot.Friday, "12:00", "13:00"),
		mkSlot("b", slot.Friday, "10:00", "11:00"),
		mkSlot("a", slot.Monday, "10:00", "11:00"),
	}
	blocks, _ := Blocks(slots, slot.DefaultWindow(), 12)
	var ids string
	for _, b := range blocks {
		ids += b.Slot.ID
	}
	if ids != "abc" {
		t.Errorf("order = %q, want days in column order then start", ids)
	}
	if blocks[2].Top != 2 {
		t.Errorf("Friday 12:00 top = %d, want 2", blocks[2].Top)
	}
}

func TestMinuteAt(t *testing.T) {
	w := slot.DefaultWindow()
	tests := []struct {
		offset int
		want   int
	}{
		{offset: 0, want: 600},
		{offset: 4, want: 720},
		{offset: 24, want: 1320},
		{offset: 30, want: 1320},
		{offset: -3, want: 600},
	}
	for _, tt := range tests {
		if got := MinuteAt(w, 24, tt.offset); got != tt.want {
			t.Errorf("MinuteAt(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}
