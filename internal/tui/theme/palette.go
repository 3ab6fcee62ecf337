package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Warning     lipgloss.Color

	// Cell backgrounds. The Cursor variants are used under the grid cursor.
	ActiveBg         lipgloss.Color
	ActiveCursorBg   lipgloss.Color
	InactiveBg       lipgloss.Color
	InactiveCursorBg lipgloss.Color
	SelectionBg      lipgloss.Color
	SelectionClashBg lipgloss.Color
	TextOnActive     lipgloss.Color
	TextOnInactive   lipgloss.Color
	TextOnSelection  lipgloss.Color
	TextOnWarning    lipgloss.Color
	TextOnAccent     lipgloss.Color
	IsLight          bool
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	isLight := isLightTheme(t.Bg)
	activeBg := cellBg(t.Active, t.Bg, isLight)
	inactiveBg := mutedBg(t.Inactive, t.Bg, isLight)
	selectionBg := cellBg(t.Selection, t.Bg, isLight)
	clashBg := cellBg(t.Warning, t.Bg, isLight)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Warning:     lipgloss.Color(t.Warning),

		ActiveBg:         lipgloss.Color(activeBg),
		ActiveCursorBg:   lipgloss.Color(alternateShade(activeBg, isLight)),
		InactiveBg:       lipgloss.Color(inactiveBg),
		InactiveCursorBg: lipgloss.Color(alternateShade(inactiveBg, isLight)),
		SelectionBg:      lipgloss.Color(selectionBg),
		SelectionClashBg: lipgloss.Color(clashBg),

		TextOnActive:    lipgloss.Color(chooseTextColor(activeBg, t.Fg, t.Bg)),
		TextOnInactive:  lipgloss.Color(chooseTextColor(inactiveBg, t.FgMuted, t.Fg)),
		TextOnSelection: lipgloss.Color(chooseTextColor(selectionBg, t.Fg, t.Bg)),
		TextOnWarning:   lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),
		TextOnAccent:    lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		IsLight:         isLight,
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// cellBg tones an accent down so labels stay readable on top of it.
func cellBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return scaleColor(accent, 0.50, 40)
}

// mutedBg is a heavier version of cellBg for inactive slots.
func mutedBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.88)
	}
	return scaleColor(accent, 0.30, 30)
}

// scaleColor multiplies each channel by factor, keeping it at or above
// floor (0-255).
func scaleColor(hex string, factor float64, floor int) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	lo := float64(floor) / 255
	scale := func(v float64) float64 { return max(v*factor, lo) }
	return colorful.Color{R: scale(c.R), G: scale(c.G), B: scale(c.B)}.Clamped().Hex()
}

// alternateShade shifts a background slightly for the cursor cell.
func alternateShade(hex string, isLight bool) string {
	if isLight {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.30)
}

// blendColors mixes b into a by ratio (0 keeps a, 1 gives b).
func blendColors(a, b string, ratio float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	if errA != nil || errB != nil {
		return a
	}
	return ca.BlendRgb(cb, min(max(ratio, 0), 1)).Clamped().Hex()
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

// contrastRatio is the WCAG contrast between two colors, from 1 to 21.
func contrastRatio(a, b string) float64 {
	l1, l2 := relativeLuminance(a), relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
