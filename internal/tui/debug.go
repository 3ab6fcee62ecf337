package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/rota/internal/selection"
)

// debugLog receives TUI state, keystrokes, and events. It is a no-op unless
// the program was started with --debug.
var debugLog = zap.NewNop()

// SetDebugLogger installs the logger used for TUI debug events.
func SetDebugLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	debugLog = l.Named("tui")
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.Debug("key press", zap.String("key", msg.String()))
}

// LogMouse logs a mouse event and the cell it hit.
func LogMouse(msg tea.MouseMsg, pos Position, hit bool) {
	debugLog.Debug("mouse",
		zap.String("event", msg.String()),
		zap.Int("x", msg.X),
		zap.Int("y", msg.Y),
		zap.Bool("hit", hit),
		zap.Int("day", pos.Day),
		zap.Int("row", pos.Row),
	)
}

// LogSelection logs a selection effect together with the resulting phase.
func LogSelection(eff selection.Effect, state selection.State) {
	if eff.Kind == selection.None {
		return
	}
	debugLog.Debug("selection",
		zap.Stringer("effect", eff.Kind),
		zap.Stringer("phase", state.Phase),
		zap.String("range", eff.Range.String()),
	)
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if from == to {
		return
	}
	debugLog.Debug("mode change",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.String("reason", reason),
	)
}

// LogCursorMove logs cursor movement.
func LogCursorMove(pos Position, reason string) {
	debugLog.Debug("cursor move",
		zap.Int("day", pos.Day),
		zap.Int("row", pos.Row),
		zap.String("reason", reason),
	)
}
