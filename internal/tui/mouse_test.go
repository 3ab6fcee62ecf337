package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/selection"
	"github.com/javiermolinar/rota/internal/slot"
)

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

// cellXY returns screen coordinates inside (day, row) for a 14-wide grid.
func cellXY(day, row int) (int, int) {
	return timeColWidth + day*14 + 3, gridTop + row
}

func TestCellAt(t *testing.T) {
	m, _ := newTestModel(t)

	tests := []struct {
		name   string
		x, y   int
		want   Position
		wantOK bool
	}{
		{"first cell", timeColWidth, gridTop, Position{0, 0}, true},
		{"last column edge", timeColWidth + 7*14 - 1, gridTop + 1, Position{6, 1}, true},
		{"wednesday 13:00", timeColWidth + 2*14 + 5, gridTop + 3, Position{2, 3}, true},
		{"time column", 2, gridTop, Position{}, false},
		{"header", timeColWidth + 1, 1, Position{}, false},
		{"right of grid", timeColWidth + 7*14, gridTop, Position{}, false},
		{"below last row", timeColWidth, gridTop + 12, Position{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.cellAt(tt.x, tt.y)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("cellAt(%d, %d) = %+v, %v; want %+v, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCellAtScrolled(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 104, Height: 10})
	m.scroll = 4

	got, ok := m.cellAt(timeColWidth, gridTop+1)
	if !ok || got != (Position{0, 5}) {
		t.Errorf("cellAt = %+v, %v; want row 5", got, ok)
	}

	if _, ok := m.cellAt(timeColWidth, gridTop+5); ok {
		t.Error("rows under the footer should not hit")
	}
}

func TestMouseDragCreatesSelection(t *testing.T) {
	m, _ := newTestModel(t)

	x, y := cellXY(1, 1) // Tuesday 11:00
	m, _ = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	if m.mode != ModeSelect {
		t.Fatalf("mode = %v, want select", m.mode)
	}
	if m.cursor != (Position{1, 1}) {
		t.Errorf("cursor = %+v", m.cursor)
	}

	x, y = cellXY(1, 3)
	m, _ = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonLeft, x, y))
	if want := (selection.Range{Day: slot.Tuesday, Start: 660, End: 840}); m.preview != want {
		t.Errorf("preview = %+v, want %+v", m.preview, want)
	}

	m, _ = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, x, y))
	if m.mode != ModeCapacity {
		t.Fatalf("mode = %v, want capacity", m.mode)
	}
	if want := (selection.Range{Day: slot.Tuesday, Start: 660, End: 840}); m.pending != want {
		t.Errorf("pending = %+v, want %+v", m.pending, want)
	}
}

func TestMouseDragUpward(t *testing.T) {
	m, _ := newTestModel(t)

	x, y := cellXY(0, 5)
	m, _ = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	x, y = cellXY(0, 3)
	m, _ = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonLeft, x, y))

	if want := (selection.Range{Day: slot.Monday, Start: 13 * 60, End: 16 * 60}); m.preview != want {
		t.Errorf("preview = %+v, want %+v", m.preview, want)
	}
}

func TestMouseDragIgnoresOtherDay(t *testing.T) {
	m, _ := newTestModel(t)

	x, y := cellXY(2, 2)
	m, _ = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	before := m.preview

	x, y = cellXY(3, 6)
	m, _ = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonLeft, x, y))
	if m.preview != before {
		t.Errorf("preview changed on another day: %+v", m.preview)
	}
}

func TestMousePressDuringKeyboardSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = Position{Day: 0, Row: 2} // Monday 12:00
	m, _ = press(t, m, runeKey('v'))

	x, y := cellXY(3, 6)
	m, _ = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	if m.cursor != (Position{0, 2}) {
		t.Errorf("cursor = %+v, want it to stay on the selection", m.cursor)
	}

	m, _ = press(t, m, runeKey('j'), enterKey)
	if m.mode != ModeCapacity {
		t.Fatalf("mode = %v, want capacity", m.mode)
	}
	if want := (selection.Range{Day: slot.Monday, Start: 720, End: 840}); m.pending != want {
		t.Errorf("pending = %+v, want %+v", m.pending, want)
	}
}

func TestMouseDragClampsBelowGrid(t *testing.T) {
	m, _ := newTestModel(t)

	x, y := cellXY(0, 10)
	m, _ = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	m, _ = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonLeft, x, y+40))

	if m.preview.End != 22*60 {
		t.Errorf("preview end = %d, want window end", m.preview.End)
	}
}

func TestMousePressOutsideGrid(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 1, 1))
	if m.mode != ModeNormal || m.sel.Active() {
		t.Error("press outside the grid should not start a selection")
	}

	m, _ = update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 1, 1))
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want normal", m.mode)
	}
}

func TestMouseRightButtonIgnored(t *testing.T) {
	m, _ := newTestModel(t)

	x, y := cellXY(0, 0)
	m, _ = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonRight, x, y))
	if m.sel.Active() {
		t.Error("right button should not select")
	}
}

func TestMouseIgnoredWhilePrompting(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, enterKey)

	x, y := cellXY(3, 3)
	m, _ = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	if m.mode != ModeCapacity || m.sel.Active() {
		t.Errorf("mode = %v, active = %v", m.mode, m.sel.Active())
	}
}

func TestMouseWheel(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 104, Height: 10})

	m, _ = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 10, 5))
	if m.scroll != 1 {
		t.Errorf("scroll = %d, want 1", m.scroll)
	}
	if m.cursor.Row != 1 {
		t.Errorf("cursor should stay on screen, row = %d", m.cursor.Row)
	}

	for range 20 {
		m, _ = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 10, 5))
	}
	if m.scroll != 7 {
		t.Errorf("scroll = %d, want 7", m.scroll)
	}

	m, _ = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 10, 5))
	if m.scroll != 6 {
		t.Errorf("scroll = %d, want 6", m.scroll)
	}
}
