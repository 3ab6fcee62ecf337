package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rota/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Header
	TitleStyle          lipgloss.Style
	SubtitleStyle       lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderFocusStyle lipgloss.Style

	// Time column
	TimeColumnStyle      lipgloss.Style
	TimeColumnFocusStyle lipgloss.Style

	// Cells
	EmptyCellStyle       lipgloss.Style
	EmptyCellAltStyle    lipgloss.Style // alternate rows
	CursorStyle          lipgloss.Style
	ActiveSlotStyle      lipgloss.Style
	ActiveCursorStyle    lipgloss.Style
	InactiveSlotStyle    lipgloss.Style
	InactiveCursorStyle  lipgloss.Style
	SelectionStyle       lipgloss.Style
	SelectionClashStyle  lipgloss.Style // selection overlapping an active slot
	SelectionCursorStyle lipgloss.Style

	// Footer
	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
	HelpStyle    lipgloss.Style
	PromptStyle  lipgloss.Style
	BusyStyle    lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	cell := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	return &Styles{
		palette: p,

		TitleStyle:          lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Background(p.Bg),
		SubtitleStyle:       lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),
		DayHeaderStyle:      lipgloss.NewStyle().Bold(true).Foreground(p.Fg).Background(p.BgHighlight).Align(lipgloss.Center),
		DayHeaderFocusStyle: lipgloss.NewStyle().Bold(true).Foreground(p.TextOnAccent).Background(p.Accent).Align(lipgloss.Center),

		TimeColumnStyle:      lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),
		TimeColumnFocusStyle: lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Background(p.Bg),

		EmptyCellStyle:       cell,
		EmptyCellAltStyle:    cell.Background(p.BgHighlight),
		CursorStyle:          cell.Background(p.BgSelection),
		ActiveSlotStyle:      cell.Background(p.ActiveBg).Foreground(p.TextOnActive),
		ActiveCursorStyle:    cell.Background(p.ActiveCursorBg).Foreground(p.TextOnActive).Bold(true),
		InactiveSlotStyle:    cell.Background(p.InactiveBg).Foreground(p.TextOnInactive).Italic(true),
		InactiveCursorStyle:  cell.Background(p.InactiveCursorBg).Foreground(p.TextOnInactive).Italic(true).Bold(true),
		SelectionStyle:       cell.Background(p.SelectionBg).Foreground(p.TextOnSelection),
		SelectionClashStyle:  cell.Background(p.SelectionClashBg).Foreground(p.TextOnSelection),
		SelectionCursorStyle: cell.Background(p.SelectionBg).Foreground(p.TextOnSelection).Bold(true),

		StatusStyle:  lipgloss.NewStyle().Foreground(p.Fg).Background(p.Bg),
		WarningStyle: lipgloss.NewStyle().Bold(true).Foreground(p.Warning).Background(p.Bg),
		HelpStyle:    lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),
		PromptStyle:  lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg),
		BusyStyle:    lipgloss.NewStyle().Foreground(p.TextOnAccent).Background(p.Accent),
	}
}

// Background returns the base background color.
func (s *Styles) Background() lipgloss.Color {
	return s.palette.Bg
}
