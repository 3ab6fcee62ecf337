package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load macchiato theme", themeName: "macchiato", wantName: "macchiato"},
		{name: "load frappe theme", themeName: "frappe", wantName: "frappe"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "case insensitive", themeName: "Latte", wantName: "latte"},
		{name: "empty name defaults to mocha", themeName: "", wantName: "mocha"},
		{name: "unknown theme falls back to mocha", themeName: "nonexistent", wantName: "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_ThemeColors(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			theme, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%s) unexpected error: %v", name, err)
			}

			// Verify all required colors are present and valid hex format
			colors := map[string]string{
				"Bg":          theme.Bg,
				"BgHighlight": theme.BgHighlight,
				"BgSelection": theme.BgSelection,
				"Fg":          theme.Fg,
				"FgMuted":     theme.FgMuted,
				"Accent":      theme.Accent,
				"Active":      theme.Active,
				"Inactive":    theme.Inactive,
				"Selection":   theme.Selection,
				"Warning":     theme.Warning,
			}

			for field, hex := range colors {
				if len(hex) != 7 || hex[0] != '#' {
					t.Errorf("theme.%s = %q, want #rrggbb", field, hex)
				}
			}
		})
	}
}

func TestInherit(t *testing.T) {
	th := &Theme{Bg: "#000000", Fg: "#ffffff", Accent: "#ff0000"}
	th.inherit()

	if th.BgHighlight != "#000000" {
		t.Errorf("BgHighlight = %q, want bg", th.BgHighlight)
	}
	if th.FgMuted != "#ffffff" || th.Inactive != "#ffffff" {
		t.Errorf("FgMuted/Inactive = %q/%q, want fg", th.FgMuted, th.Inactive)
	}
	if th.Selection != "#ff0000" || th.Warning != "#ff0000" {
		t.Errorf("Selection/Warning = %q/%q, want accent", th.Selection, th.Warning)
	}
	if th.BgSelection != "#000000" {
		t.Errorf("BgSelection = %q, want the inherited highlight", th.BgSelection)
	}

	set := &Theme{Bg: "#000000", Warning: "#00ff00", Accent: "#ff0000"}
	set.inherit()
	if set.Warning != "#00ff00" {
		t.Errorf("explicit Warning overwritten: %q", set.Warning)
	}
}

func TestAvailable(t *testing.T) {
	got := Available()
	if len(got) != 4 || got[0] != DefaultName {
		t.Errorf("Available() = %v", got)
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		expected bool
	}{
		{name: "exact match", theme: "mocha", expected: true},
		{name: "case insensitive", theme: "Mocha", expected: true},
		{name: "missing theme", theme: "unknown", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.theme); got != tt.expected {
				t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.expected)
			}
		})
	}
}
