package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/rota/internal/slot"
)

const defaultTermWidth = 80

var (
	colorActive   = color.New(color.FgGreen, color.Bold)
	colorInactive = color.New(color.FgWhite, color.Faint)
	colorWarning  = color.New(color.FgYellow)
	colorHeader   = color.New(color.Bold)
	colorMuted    = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the width of w when it is a terminal, else 80.
func termWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatActive(s string) string   { return colorActive.Sprint(s) }
func formatInactive(s string) string { return colorInactive.Sprint(s) }
func formatWarning(s string) string  { return colorWarning.Sprint(s) }
func formatHeader(s string) string   { return colorHeader.Sprint(s) }
func formatMuted(s string) string    { return colorMuted.Sprint(s) }

// styleSlot colors text by the slot's state.
func styleSlot(s slot.Slot, text string) string {
	if s.Active {
		return formatActive(text)
	}
	return formatInactive(text)
}
