package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/lifecycle"
	"github.com/javiermolinar/rota/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		m.ensureCursorVisible()
		return m, nil

	case commands.SlotsLoadedMsg:
		m.loading = false
		m.setSlots(msg.Slots)
		if n := len(m.plan.Unplaced); n > 0 {
			m.setStatus(fmt.Sprintf("%d slot(s) could not be placed on the grid", n), true)
			return m, clearStatusAfter()
		}
		return m, nil

	case commands.LifecycleResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.setStatus(lifecycle.Describe(msg.Err), true)
			return m, clearStatusAfter()
		}
		m.setStatus(resultText(msg), false)
		return m, tea.Batch(commands.LoadSlots(m.lc, m.lister), clearStatusAfter())

	case commands.ErrMsg:
		m.loading = false
		m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)
		return m, clearStatusAfter()

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg, msg.Warning)
		return m, clearStatusAfter()

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.warning = false
		}
		return m, nil
	}

	// Cursor blink and other textinput messages.
	if m.mode == ModeCapacity {
		var cmd tea.Cmd
		m.capacity, cmd = m.capacity.Update(msg)
		return m, cmd
	}

	return m, nil
}

func clearStatusAfter() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func resultText(msg commands.LifecycleResultMsg) string {
	switch msg.Op {
	case lifecycle.OpCreate:
		return "Created " + msg.Slot.Day.Short() + " " + msg.Slot.TimeRange()
	case lifecycle.OpUpdate:
		return "Updated " + msg.Slot.Day.Short() + " " + msg.Slot.TimeRange()
	case lifecycle.OpDelete:
		return "Slot deleted"
	case lifecycle.OpActivate:
		return "Slot activated"
	case lifecycle.OpDeactivate:
		return "Slot deactivated"
	}
	return "Done"
}
