// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultName is used for empty or unknown theme names.
const DefaultName = "mocha"

//go:embed embedded/*.toml
var embedded embed.FS

// Theme is the set of base colors a palette is derived from. Optional
// colors left empty inherit from another field.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`
	BgHighlight string `toml:"bg_highlight"` // header rows, alternate rows
	BgSelection string `toml:"bg_selection"` // cursor
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // time labels, help text
	Accent      string `toml:"accent"`
	Active      string `toml:"active"`
	Inactive    string `toml:"inactive"`
	Selection   string `toml:"selection"` // drag preview
	Warning     string `toml:"warning"`   // conflicts, errors
}

// Load reads a built-in theme. Unknown names load DefaultName.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !IsAvailable(name) {
		name = DefaultName
	}

	data, err := embedded.ReadFile(path.Join("embedded", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("reading theme %q: %w", name, err)
	}
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.inherit()
	return &t, nil
}

func (t *Theme) inherit() {
	for _, f := range []struct {
		field *string
		from  []string
	}{
		{&t.BgHighlight, []string{t.Bg}},
		{&t.BgSelection, []string{t.BgHighlight, t.Bg, t.Accent}},
		{&t.FgMuted, []string{t.Fg}},
		{&t.Inactive, []string{t.FgMuted, t.Fg}},
		{&t.Selection, []string{t.Accent}},
		{&t.Warning, []string{t.Accent}},
	} {
		if *f.field != "" {
			continue
		}
		for _, v := range f.from {
			if v != "" {
				*f.field = v
				break
			}
		}
	}
}

// Available lists the built-in theme names, dark themes first.
func Available() []string {
	names := []string{"mocha", "macchiato", "frappe", "latte"}
	entries, err := fs.Glob(embedded, "embedded/*.toml")
	if err != nil {
		return names
	}
	for _, e := range entries {
		n := strings.TrimSuffix(path.Base(e), ".toml")
		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	return names
}

// IsAvailable reports whether name is a built-in theme, ignoring case.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
