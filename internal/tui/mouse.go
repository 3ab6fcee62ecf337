package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/selection"
	"github.com/javiermolinar/rota/internal/slot"
)

// handleMouseMsg turns left-button drags into selection events and the
// wheel into scrolling.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(1)
		return m, nil
	}

	if m.mode == ModeCapacity || m.mode == ModeConfirmDelete {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		pos, ok := m.cellAt(msg.X, msg.Y)
		LogMouse(msg, pos, ok)
		if !ok || m.sel.State().Phase != selection.Idle {
			return m, nil
		}
		m.cursor = pos
		if m.busy {
			return m.busyStatus()
		}
		eff := m.sel.Handle(selection.Press{
			Point:   m.point(pos.Day, pos.Row),
			Pointer: selection.Fine,
			At:      m.now(),
		})
		return m, m.applySelection(eff)

	case tea.MouseActionMotion:
		if !m.sel.Active() {
			return m, nil
		}
		pos := m.dragCellAt(msg.X, msg.Y)
		if pos.Day != m.cursor.Day {
			// Selections never cross days.
			return m, nil
		}
		m.cursor.Row = pos.Row
		eff := m.sel.Handle(selection.Move{
			Point: m.point(pos.Day, pos.Row),
			At:    m.now(),
		})
		return m, m.applySelection(eff)

	case tea.MouseActionRelease:
		if m.sel.State().Phase == selection.Idle {
			return m, nil
		}
		eff := m.sel.Handle(selection.Release{At: m.now()})
		return m, m.applySelection(eff)
	}

	return m, nil
}

// cellAt maps screen coordinates to a grid cell.
func (m Model) cellAt(x, y int) (Position, bool) {
	if x < timeColWidth || y < gridTop || m.colWidth <= 0 {
		return Position{}, false
	}
	day := (x - timeColWidth) / m.colWidth
	row := y - gridTop + m.scroll
	if day >= slot.DaysPerWeek || row >= m.plan.Rows || y-gridTop >= m.visibleRows() {
		return Position{}, false
	}
	return Position{Day: day, Row: row}, true
}

// dragCellAt is cellAt clamped to the visible grid, so a drag that leaves
// the grid keeps extending toward the nearest edge.
func (m Model) dragCellAt(x, y int) Position {
	day := 0
	if x >= timeColWidth && m.colWidth > 0 {
		day = min((x-timeColWidth)/m.colWidth, slot.DaysPerWeek-1)
	}
	last := min(m.scroll+m.visibleRows(), m.plan.Rows) - 1
	row := min(max(y-gridTop+m.scroll, m.scroll), max(last, 0))
	return Position{Day: day, Row: row}
}

func (m *Model) scrollBy(delta int) {
	visible := m.visibleRows()
	m.scroll = min(max(m.scroll+delta, 0), max(m.plan.Rows-visible, 0))
	if m.mode == ModeSelect {
		return
	}
	// Keep the cursor on screen.
	m.cursor.Row = min(max(m.cursor.Row, m.scroll), m.scroll+visible-1)
	m.clampCursor()
}
