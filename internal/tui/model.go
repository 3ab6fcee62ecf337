// Package tui provides the terminal user interface for rota.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/grid"
	"github.com/javiermolinar/rota/internal/selection"
	"github.com/javiermolinar/rota/internal/slot"
	"github.com/javiermolinar/rota/internal/tui/commands"
	"github.com/javiermolinar/rota/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal        Mode = iota
	ModeSelect             // selection gesture in progress (keyboard or mouse)
	ModeCapacity           // capacity prompt for a new or edited slot
	ModeConfirmDelete      // waiting for y/n
)

var modeNames = [...]string{"normal", "select", "capacity", "confirm-delete"}

func (m Mode) String() string {
	if m < ModeNormal || m > ModeConfirmDelete {
		return "unknown"
	}
	return modeNames[m]
}

// Position represents a cursor position in the grid.
type Position struct {
	Day int // 0=Monday, 6=Sunday
	Row int // grid row
}

// Layout constants. The grid starts below the title and day header lines.
const (
	timeColWidth    = 6
	gridTop         = 2
	footerLines     = 3
	defaultColWidth = 14
	minColWidth     = 8
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	lc     commands.Lifecycle
	lister slot.Lister
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Grid
	gridCfg grid.Config
	slots   []slot.Slot
	plan    grid.Plan

	// Selection
	sel     *selection.Controller
	preview selection.Range // live range while selecting
	clash   *slot.Slot      // active slot the preview overlaps
	pending selection.Range // finalized range awaiting a capacity
	editID  string          // slot whose capacity is being edited

	// State
	cursor  Position
	mode    Mode
	loading bool
	busy    bool // a lifecycle call is in flight

	// Components
	capacity textinput.Model

	// Terminal dimensions and layout
	width    int
	height   int
	colWidth int
	scroll   int

	// Messages
	statusMsg  string
	statusTime time.Time
	warning    bool

	now func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock overrides the time source used for gestures and status timeouts.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model.
func New(lc commands.Lifecycle, lister slot.Lister, cfg *config.Config, opts ...ModelOption) Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "capacity"
	ti.CharLimit = 4
	ti.Width = 6
	ti.Prompt = "Capacity: "
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.StatusStyle

	gridCfg := cfg.GridLayout()

	m := Model{
		lc:       lc,
		lister:   lister,
		config:   cfg,
		theme:    t,
		styles:   styles,
		gridCfg:  gridCfg,
		plan:     grid.Layout(nil, gridCfg),
		sel:      selection.NewController(cfg.Selection()),
		cursor:   Position{Day: int(slot.FromTimeWeekday(time.Now().Weekday()))},
		mode:     ModeNormal,
		loading:  true,
		capacity: ti,
		colWidth: defaultColWidth,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// Init loads the slot set.
func (m Model) Init() tea.Cmd {
	return commands.LoadSlots(m.lc, m.lister)
}

// setMode switches modes and logs the change.
func (m *Model) setMode(mode Mode, reason string) {
	LogModeChange(m.mode, mode, reason)
	m.mode = mode
}

// setSlots installs a new slot set and recomputes the plan.
func (m *Model) setSlots(slots []slot.Slot) {
	m.slots = slots
	m.plan = grid.Layout(slots, m.gridCfg)
	m.clampCursor()
}

// focused returns the slot under the cursor.
func (m Model) focused() (slot.Slot, bool) {
	return m.plan.SlotAt(slot.Weekday(m.cursor.Day), m.cursor.Row)
}

func (m *Model) clampCursor() {
	m.cursor.Day = min(max(m.cursor.Day, 0), slot.DaysPerWeek-1)
	m.cursor.Row = min(max(m.cursor.Row, 0), max(m.plan.Rows-1, 0))
	m.ensureCursorVisible()
}

// visibleRows returns how many grid rows fit on screen.
func (m Model) visibleRows() int {
	if m.height == 0 {
		return m.plan.Rows
	}
	return max(m.height-gridTop-footerLines, 1)
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleRows()
	if m.cursor.Row < m.scroll {
		m.scroll = m.cursor.Row
	}
	if m.cursor.Row >= m.scroll+visible {
		m.scroll = m.cursor.Row - visible + 1
	}
	m.scroll = min(max(m.scroll, 0), max(m.plan.Rows-visible, 0))
}

func (m Model) calculateColWidth() int {
	if m.width == 0 {
		return defaultColWidth
	}
	return max((m.width-timeColWidth)/slot.DaysPerWeek, minColWidth)
}

// point returns the selection point for a grid cell.
func (m Model) point(day, row int) selection.Point {
	start := m.gridCfg.RowStart(row)
	return selection.Point{
		Day:    slot.Weekday(day),
		Minute: start,
		Span:   m.gridCfg.RowEnd(row) - start,
	}
}

func (m *Model) setStatus(msg string, warning bool) {
	m.statusMsg = msg
	m.warning = warning
	m.statusTime = m.now().Add(statusTTL)
}

const statusTTL = 4 * time.Second
