// Package view composes the TUI screen from pre-rendered sections.
package view

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rota/internal/slot"
)

// Stack joins the non-empty sections with newlines. Until the terminal size
// is known it returns placeholder.
func Stack(width, height int, placeholder string, sections ...string) string {
	if width <= 0 || height <= 0 {
		return placeholder
	}
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// Fill fits content into a width x height block. Long lines are cut, short
// ones padded with bg, missing lines are blank and extra lines dropped.
func Fill(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	pad := lipgloss.NewStyle().Background(bg)
	src := strings.Split(content, "\n")

	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(src) {
			line = src[i]
		}
		if w := ansi.StringWidth(line); w > width {
			line = ansi.Truncate(line, width, "")
		} else {
			line += pad.Render(strings.Repeat(" ", width-w))
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// Lines renders lines into a block height lines tall. When there are more
// lines than fit, the first ones are dropped.
func Lines(width, height int, bg lipgloss.Color, lines ...string) string {
	if height <= 0 {
		return ""
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return Fill(strings.Join(lines, "\n"), width, height, bg)
}

// Cell renders text into a fixed-width cell after one space of padding,
// truncating with an ellipsis.
func Cell(text string, width int, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	if text != "" {
		text = " " + ansi.Truncate(text, width-1, "…")
	}
	return style.Width(width).MaxWidth(width).Render(text)
}

// DayLabels returns the short day names with today's marked "*Wed*".
func DayLabels(today time.Time) [slot.DaysPerWeek]string {
	var labels [slot.DaysPerWeek]string
	mark := slot.FromTimeWeekday(today.Weekday())
	for i, d := range slot.Weekdays {
		labels[i] = d.Short()
		if d == mark {
			labels[i] = "*" + labels[i] + "*"
		}
	}
	return labels
}
