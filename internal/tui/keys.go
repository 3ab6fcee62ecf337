package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/lifecycle"
	"github.com/javiermolinar/rota/internal/selection"
	"github.com/javiermolinar/rota/internal/slot"
	"github.com/javiermolinar/rota/internal/tui/commands"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSelect:
		return m.handleSelectKeys(msg)
	case ModeCapacity:
		return m.handleCapacityKeys(msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		}
	case "l", "right":
		if m.cursor.Day < slot.DaysPerWeek-1 {
			m.cursor.Day++
		}
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "j", "down":
		if m.cursor.Row < m.plan.Rows-1 {
			m.cursor.Row++
		}
	case "g", "home":
		m.cursor.Row = 0
	case "G", "end":
		m.cursor.Row = max(m.plan.Rows-1, 0)
	case "pgup":
		m.cursor.Row = max(m.cursor.Row-m.visibleRows(), 0)
	case "pgdown":
		m.cursor.Row = min(m.cursor.Row+m.visibleRows(), max(m.plan.Rows-1, 0))

	// Selection
	case "v":
		return m.startKeyboardSelection()
	case "enter":
		return m.handleEnter()

	// Slot actions
	case "a":
		return m.handleToggleActive()
	case "d", "x":
		return m.handleDelete()
	case "+", "=":
		return m.handleCapacityStep(1)
	case "-":
		return m.handleCapacityStep(-1)
	case "J":
		return m.handleShift(m.gridCfg.RowUnit)
	case "K":
		return m.handleShift(-m.gridCfg.RowUnit)
	case "y":
		return m.handleCopy()
	case "r":
		m.loading = true
		return m, commands.LoadSlots(m.lc, m.lister)
	case "esc":
		m.statusMsg = ""
		m.warning = false
		return m, nil
	default:
		return m, nil
	}

	m.ensureCursorVisible()
	LogCursorMove(m.cursor, msg.String())
	return m, nil
}

// handleSelectKeys extends, confirms, or cancels a selection in progress.
// Keyboard selections stay on the anchor's day.
func (m Model) handleSelectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
		return m.moveSelection()
	case "j", "down":
		if m.cursor.Row < m.plan.Rows-1 {
			m.cursor.Row++
		}
		return m.moveSelection()
	case "enter", " ":
		eff := m.sel.Handle(selection.Release{At: m.now()})
		return m, m.applySelection(eff)
	case "esc", "q":
		eff := m.sel.Handle(selection.Cancel{})
		return m, m.applySelection(eff)
	}
	return m, nil
}

// handleCapacityKeys handles the capacity prompt.
func (m Model) handleCapacityKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt("prompt_cancel")
		m.setStatus("Cancelled", false)
		return m, clearStatusAfter()

	case tea.KeyEnter:
		return m.submitCapacity(m.capacity.Value())
	}

	var cmd tea.Cmd
	m.capacity, cmd = m.capacity.Update(msg)
	return m, cmd
}

// handleConfirmDeleteKeys waits for the delete confirmation.
func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.editID = ""
		m.setMode(ModeNormal, "delete_cancel")
		return m, nil

	case "enter", "y":
		id := m.editID
		m.editID = ""
		m.setMode(ModeNormal, "delete_confirm")
		m.busy = true
		return m, commands.DeleteSlot(m.lc, id)
	}
	return m, nil
}

func (m Model) startKeyboardSelection() (tea.Model, tea.Cmd) {
	if m.busy {
		return m.busyStatus()
	}
	eff := m.sel.Handle(selection.Press{
		Point:   m.point(m.cursor.Day, m.cursor.Row),
		Pointer: selection.Fine,
		At:      m.now(),
	})
	return m, m.applySelection(eff)
}

func (m Model) moveSelection() (tea.Model, tea.Cmd) {
	m.ensureCursorVisible()
	eff := m.sel.Handle(selection.Move{
		Point: m.point(m.cursor.Day, m.cursor.Row),
		At:    m.now(),
	})
	return m, m.applySelection(eff)
}

// handleEnter edits the focused slot's capacity, or proposes a one-row slot
// on an empty cell.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.busy {
		return m.busyStatus()
	}
	if s, ok := m.focused(); ok {
		m.editID = s.ID
		return m, m.openPrompt(s.Capacity, "edit_capacity")
	}

	p := m.point(m.cursor.Day, m.cursor.Row)
	m.sel.Handle(selection.Press{Point: p, Pointer: selection.Fine, At: m.now()})
	eff := m.sel.Handle(selection.Release{At: m.now()})
	return m, m.applySelection(eff)
}

func (m Model) handleToggleActive() (tea.Model, tea.Cmd) {
	s, ok := m.focused()
	if !ok {
		m.setStatus("No slot here", true)
		return m, clearStatusAfter()
	}
	if m.busy {
		return m.busyStatus()
	}
	m.busy = true
	return m, commands.SetActive(m.lc, s.ID, !s.Active)
}

func (m Model) handleDelete() (tea.Model, tea.Cmd) {
	s, ok := m.focused()
	if !ok {
		m.setStatus("No slot here", true)
		return m, clearStatusAfter()
	}
	if m.busy {
		return m.busyStatus()
	}
	m.editID = s.ID
	m.setMode(ModeConfirmDelete, "delete")
	return m, nil
}

func (m Model) handleCapacityStep(delta int) (tea.Model, tea.Cmd) {
	s, ok := m.focused()
	if !ok {
		m.setStatus("No slot here", true)
		return m, clearStatusAfter()
	}
	if m.busy {
		return m.busyStatus()
	}
	in := lifecycle.FromSlot(s)
	in.Capacity += delta
	if in.Capacity < 1 {
		m.setStatus("Capacity cannot go below 1", true)
		return m, clearStatusAfter()
	}
	m.busy = true
	return m, commands.UpdateSlot(m.lc, s.ID, in)
}

// handleShift moves the focused slot by delta minutes, keeping its length.
func (m Model) handleShift(delta int) (tea.Model, tea.Cmd) {
	s, ok := m.focused()
	if !ok {
		m.setStatus("No slot here", true)
		return m, clearStatusAfter()
	}
	if m.busy {
		return m.busyStatus()
	}
	in := lifecycle.FromSlot(s)
	in.Start += delta
	in.End += delta
	if !m.gridCfg.Window().ContainsRange(in.Start, in.End) {
		m.setStatus("Slot would leave the "+m.gridCfg.Window().String()+" window", true)
		return m, clearStatusAfter()
	}
	m.busy = true
	if delta > 0 {
		m.cursor.Row = min(m.cursor.Row+1, max(m.plan.Rows-1, 0))
	} else {
		m.cursor.Row = max(m.cursor.Row-1, 0)
	}
	m.ensureCursorVisible()
	return m, commands.UpdateSlot(m.lc, s.ID, in)
}

// handleCopy copies the week's slots as plain text.
func (m Model) handleCopy() (tea.Model, tea.Cmd) {
	if len(m.slots) == 0 {
		m.setStatus("No slots to copy", true)
		return m, clearStatusAfter()
	}
	return m, commands.Copy(copyToClipboard, weekText(m.slots))
}

func (m Model) busyStatus() (tea.Model, tea.Cmd) {
	m.setStatus("Waiting for the previous change", true)
	return m, clearStatusAfter()
}

// applySelection mirrors a selection effect into the model.
func (m *Model) applySelection(eff selection.Effect) tea.Cmd {
	LogSelection(eff, m.sel.State())

	switch eff.Kind {
	case selection.Started, selection.Changed:
		m.preview = eff.Range
		m.clash = slot.FindConflict(m.slots, eff.Range.Day, eff.Range.Start, eff.Range.End, "")
		m.setMode(ModeSelect, eff.Kind.String())

	case selection.Finalized:
		m.preview = selection.Range{}
		m.clash = nil
		return m.finalize(eff.Range)

	case selection.Cancelled:
		m.preview = selection.Range{}
		m.clash = nil
		m.setMode(ModeNormal, "selection_cancel")
	}
	return nil
}

// finalize opens the capacity prompt for a finalized range unless it
// overlaps an active slot.
func (m *Model) finalize(r selection.Range) tea.Cmd {
	if c := slot.FindConflict(m.slots, r.Day, r.Start, r.End, ""); c != nil {
		m.setMode(ModeNormal, "selection_conflict")
		m.setStatus(lifecycle.Describe(&slot.ConflictError{Slot: *c}), true)
		return clearStatusAfter()
	}
	m.pending = r
	m.editID = ""
	return m.openPrompt(m.config.Grid.DefaultCapacity, "selection_finalized")
}

func (m *Model) openPrompt(capacity int, reason string) tea.Cmd {
	m.capacity.SetValue(strconv.Itoa(capacity))
	m.capacity.CursorEnd()
	m.capacity.Focus()
	m.setMode(ModeCapacity, reason)
	return textinput.Blink
}

func (m *Model) closePrompt(reason string) {
	m.capacity.Blur()
	m.capacity.SetValue("")
	m.pending = selection.Range{}
	m.editID = ""
	m.setMode(ModeNormal, reason)
}

// submitCapacity creates the pending slot or updates the edited one.
func (m Model) submitCapacity(value string) (tea.Model, tea.Cmd) {
	capacity, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || capacity < 1 {
		m.setStatus("Capacity must be a positive integer", true)
		return m, clearStatusAfter()
	}

	if m.editID != "" {
		id := m.editID
		s, ok := m.findSlot(id)
		m.closePrompt("prompt_submit")
		if !ok {
			m.setStatus("Slot no longer exists", true)
			return m, clearStatusAfter()
		}
		in := lifecycle.FromSlot(s)
		in.Capacity = capacity
		m.busy = true
		return m, commands.UpdateSlot(m.lc, id, in)
	}

	r := m.pending
	m.closePrompt("prompt_submit")
	m.busy = true
	return m, commands.CreateSlot(m.lc, lifecycle.Input{
		Day:      r.Day,
		Start:    r.Start,
		End:      r.End,
		Capacity: capacity,
	})
}

func (m Model) findSlot(id string) (slot.Slot, bool) {
	for _, s := range m.slots {
		if s.ID == id {
			return s, true
		}
	}
	return slot.Slot{}, false
}

// weekText renders slots one per line, grouped by day.
func weekText(slots []slot.Slot) string {
	var b strings.Builder
	for day, list := range slot.ByDay(slots) {
		for _, s := range list {
			state := ""
			if !s.Active {
				state = " (inactive)"
			}
			fmt.Fprintf(&b, "%s %s  capacity %d%s\n", slot.Weekday(day).Short(), s.TimeRange(), s.Capacity, state)
		}
	}
	return b.String()
}
