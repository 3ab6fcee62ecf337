package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rota/internal/grid"
	"github.com/javiermolinar/rota/internal/slot"
	"github.com/javiermolinar/rota/internal/tui/view"
)

// View renders the TUI.
func (m Model) View() string {
	return view.Stack(m.width, m.height, "Loading...",
		m.renderHeader(),
		m.renderGrid(),
		m.renderFooter(),
	)
}

func (m Model) innerWidth() int {
	return timeColWidth + m.colWidth*slot.DaysPerWeek
}

// renderHeader renders the title line and the day header.
func (m Model) renderHeader() string {
	title := m.styles.TitleStyle.Render(" rota ")
	sub := fmt.Sprintf(" %s · %d min rows", m.gridCfg.Window(), m.gridCfg.RowUnit)
	if n := len(m.plan.Unplaced); n > 0 {
		sub += fmt.Sprintf(" · %d hidden", n)
	}
	if m.loading {
		sub += " · loading"
	}
	line := title + m.styles.SubtitleStyle.Render(sub)
	if m.busy {
		line += " " + m.styles.BusyStyle.Render(" saving ")
	}

	labels := view.DayLabels(m.now())
	var days strings.Builder
	days.WriteString(m.styles.TimeColumnStyle.Width(timeColWidth).Render(""))
	for i, label := range labels {
		style := m.styles.DayHeaderStyle
		if i == m.cursor.Day {
			style = m.styles.DayHeaderFocusStyle
		}
		days.WriteString(style.Width(m.colWidth).MaxWidth(m.colWidth).Render(label))
	}

	bg := m.styles.Background()
	return view.Fill(line+"\n"+days.String(), m.innerWidth(), gridTop, bg)
}

// renderGrid renders the visible rows.
func (m Model) renderGrid() string {
	if m.plan.Rows == 0 {
		return m.styles.WarningStyle.Render("Empty scheduling window")
	}

	last := min(m.scroll+m.visibleRows(), m.plan.Rows)
	lines := make([]string, 0, last-m.scroll)
	for row := m.scroll; row < last; row++ {
		lines = append(lines, m.renderRow(row))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row int) string {
	var b strings.Builder

	labelStyle := m.styles.TimeColumnStyle
	if row == m.cursor.Row {
		labelStyle = m.styles.TimeColumnFocusStyle
	}
	b.WriteString(view.Cell(m.plan.RowLabel(row), timeColWidth, labelStyle))

	for day := range slot.DaysPerWeek {
		b.WriteString(m.renderCell(day, row))
	}
	return b.String()
}

// renderCell draws one (day, row) cell. The live selection is drawn over
// whatever the plan has underneath.
func (m Model) renderCell(day, row int) string {
	isCursor := day == m.cursor.Day && row == m.cursor.Row

	if m.inPreview(day, row) {
		style := m.styles.SelectionStyle
		if m.clash != nil {
			style = m.styles.SelectionClashStyle
		}
		if isCursor {
			style = m.styles.SelectionCursorStyle
		}
		label := ""
		if row == m.previewFirstRow() {
			label = slot.FormatRange(m.preview.Start, m.preview.End)
		}
		return view.Cell(label, m.colWidth, style)
	}

	cell, ok := m.plan.Columns[day].At(row)
	if ok && cell.Kind == grid.CellOccupied {
		return view.Cell(slotLabel(cell, row), m.colWidth, m.slotStyle(cell.Slot, isCursor))
	}

	style := m.styles.EmptyCellStyle
	if row%2 == 1 {
		style = m.styles.EmptyCellAltStyle
	}
	if isCursor {
		style = m.styles.CursorStyle
	}
	return view.Cell("", m.colWidth, style)
}

func (m Model) slotStyle(s slot.Slot, cursor bool) lipgloss.Style {
	switch {
	case s.Active && cursor:
		return m.styles.ActiveCursorStyle
	case s.Active:
		return m.styles.ActiveSlotStyle
	case cursor:
		return m.styles.InactiveCursorStyle
	default:
		return m.styles.InactiveSlotStyle
	}
}

// slotLabel returns the text for one row of an occupied cell: the time
// range on the first row and the capacity on the second.
func slotLabel(cell grid.Cell, row int) string {
	s := cell.Slot
	capacity := fmt.Sprintf("cap %d", s.Capacity)
	if !s.Active {
		capacity += " off"
	}
	switch row - cell.Row {
	case 0:
		if cell.RowSpan == 1 {
			return s.TimeRange() + " " + capacity
		}
		return s.TimeRange()
	case 1:
		return capacity
	}
	return ""
}

func (m Model) inPreview(day, row int) bool {
	if m.mode != ModeSelect || m.preview.Empty() || int(m.preview.Day) != day {
		return false
	}
	return m.gridCfg.RowStart(row) < m.preview.End && m.gridCfg.RowEnd(row) > m.preview.Start
}

func (m Model) previewFirstRow() int {
	return m.gridCfg.RowOf(max(m.preview.Start, m.gridCfg.WindowStart))
}

// renderFooter renders the prompt, status, and help lines.
func (m Model) renderFooter() string {
	return view.Lines(m.innerWidth(), footerLines, m.styles.Background(),
		m.promptLine(),
		m.statusLine(),
		m.styles.HelpStyle.Render(m.helpText()),
	)
}

func (m Model) promptLine() string {
	switch m.mode {
	case ModeCapacity:
		target := "New slot " + m.pending.String()
		if s, ok := m.findSlot(m.editID); ok && m.editID != "" {
			target = "Edit " + s.String()
		}
		return m.styles.PromptStyle.Render(target+"  ") + m.capacity.View()
	case ModeConfirmDelete:
		if s, ok := m.findSlot(m.editID); ok {
			return m.styles.WarningStyle.Render("Delete " + s.String() + "? (y/n)")
		}
		return m.styles.WarningStyle.Render("Delete slot? (y/n)")
	case ModeSelect:
		if m.clash != nil {
			return m.styles.WarningStyle.Render(fmt.Sprintf("%s overlaps %s %s",
				m.preview, m.clash.Day, m.clash.TimeRange()))
		}
		return m.styles.PromptStyle.Render("Selecting " + m.preview.String())
	}
	if s, ok := m.focused(); ok {
		return m.styles.StatusStyle.Render(s.String())
	}
	return ""
}

func (m Model) statusLine() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.warning {
		return m.styles.WarningStyle.Render(m.statusMsg)
	}
	return m.styles.StatusStyle.Render(m.statusMsg)
}

func (m Model) helpText() string {
	switch m.mode {
	case ModeSelect:
		return "j/k extend · drag to extend · enter confirm · esc cancel"
	case ModeCapacity:
		return "enter save · esc cancel"
	case ModeConfirmDelete:
		return "y delete · n keep"
	}
	return "hjkl move · v/drag select · enter new/edit · a toggle · d delete · +/- capacity · J/K shift · y copy · r reload · q quit"
}
