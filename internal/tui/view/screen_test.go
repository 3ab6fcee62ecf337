package view

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestStack(t *testing.T) {
	if got := Stack(0, 0, "Loading...", "h"); got != "Loading..." {
		t.Errorf("unsized Stack() = %q", got)
	}
	if got := Stack(10, 5, "", "h", "", "g", "f"); got != "h\ng\nf" {
		t.Errorf("Stack() = %q", got)
	}
}

func TestFill(t *testing.T) {
	out := Fill("ab\nabcdefgh", 4, 3, lipgloss.Color(""))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 4 {
			t.Errorf("line %d width = %d, want 4 (%q)", i, w, line)
		}
	}
	if !strings.HasPrefix(lines[1], "abcd") {
		t.Errorf("long line = %q", lines[1])
	}
}

func TestLines(t *testing.T) {
	bg := lipgloss.Color("")

	out := Lines(20, 3, bg, "prompt", "status", "help")
	for _, want := range []string{"prompt", "status", "help"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q: %q", want, out)
		}
	}

	out = Lines(20, 2, bg, "prompt", "status", "help")
	if strings.Contains(out, "prompt") || !strings.Contains(out, "help") {
		t.Errorf("short block should drop the first line: %q", out)
	}

	if out := Lines(20, 0, bg, "x"); out != "" {
		t.Errorf("zero height = %q", out)
	}
}

func TestCell(t *testing.T) {
	style := lipgloss.NewStyle()

	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "10:00", 8, " 10:00  "},
		{"truncated", "10:00-11:00", 6, " 10:0…"},
		{"empty", "", 3, "   "},
		{"zero width", "x", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cell(tt.text, tt.width, style); got != tt.want {
				t.Errorf("Cell(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestDayLabels(t *testing.T) {
	wednesday := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	labels := DayLabels(wednesday)
	if labels[0] != "Mon" || labels[2] != "*Wed*" || labels[6] != "Sun" {
		t.Errorf("labels = %v", labels)
	}

	sunday := time.Date(2025, 1, 19, 9, 0, 0, 0, time.UTC)
	if got := DayLabels(sunday)[6]; got != "*Sun*" {
		t.Errorf("sunday label = %q", got)
	}
}
