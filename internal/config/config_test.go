package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Grid.WindowStart != "10:00" {
		t.Errorf("expected window_start 10:00, got %s", cfg.Grid.WindowStart)
	}
	if cfg.Grid.WindowEnd != "22:00" {
		t.Errorf("expected window_end 22:00, got %s", cfg.Grid.WindowEnd)
	}
	if cfg.Grid.RowUnitMinutes != 60 {
		t.Errorf("expected row_unit_minutes 60, got %d", cfg.Grid.RowUnitMinutes)
	}
	if cfg.Grid.SelectionSnapMinutes != 30 {
		t.Errorf("expected selection_snap_minutes 30, got %d", cfg.Grid.SelectionSnapMinutes)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("expected driver sqlite, got %s", cfg.Storage.Driver)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Grid.WindowStart != "10:00" {
		t.Errorf("expected default window_start, got %s", cfg.Grid.WindowStart)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[grid]
window_start = "08:00"
window_end = "20:00"
row_unit_minutes = 30
selection_snap_minutes = 15
long_press_threshold_ms = 500
default_capacity = 4

[storage]
db_path = "/tmp/test.db"

[ui]
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Grid.WindowStart != "08:00" || cfg.Grid.WindowEnd != "20:00" {
		t.Errorf("window = %s-%s, want 08:00-20:00", cfg.Grid.WindowStart, cfg.Grid.WindowEnd)
	}
	if cfg.Grid.RowUnitMinutes != 30 {
		t.Errorf("expected row_unit_minutes 30, got %d", cfg.Grid.RowUnitMinutes)
	}
	if cfg.Grid.DefaultCapacity != 4 {
		t.Errorf("expected default_capacity 4, got %d", cfg.Grid.DefaultCapacity)
	}
	if cfg.LongPress() != 500*time.Millisecond {
		t.Errorf("expected long press 500ms, got %v", cfg.LongPress())
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}

	layout := cfg.GridLayout()
	if layout.WindowStart != 480 || layout.WindowEnd != 1200 || layout.RowUnit != 30 {
		t.Errorf("GridLayout() = %+v", layout)
	}
	if layout.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", layout.Rows())
	}

	sel := cfg.Selection()
	if sel.Snap != 15 || sel.Window.Start != 480 || sel.LongPress != 500*time.Millisecond {
		t.Errorf("Selection() = %+v", sel)
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte("[grid\nwindow_start ="), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[grid]
window_start = "08:00"
window_end = "20:00"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set env vars
	t.Setenv("ROTA_WINDOW_START", "09:00")
	t.Setenv("ROTA_ROW_UNIT_MINUTES", "15")
	t.Setenv("ROTA_DB_PATH", "/tmp/env.db")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Grid.WindowStart != "09:00" {
		t.Errorf("expected window_start 09:00 from env, got %s", cfg.Grid.WindowStart)
	}
	// File value should be kept when no env override
	if cfg.Grid.WindowEnd != "20:00" {
		t.Errorf("expected window_end 20:00 from file, got %s", cfg.Grid.WindowEnd)
	}
	// Env should override default
	if cfg.Grid.RowUnitMinutes != 15 {
		t.Errorf("expected row_unit_minutes 15 from env, got %d", cfg.Grid.RowUnitMinutes)
	}
	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("expected db_path /tmp/env.db from env, got %s", cfg.Storage.DBPath)
	}
}

func TestLoadFrom_EnvNotInteger(t *testing.T) {
	t.Setenv("ROTA_DEFAULT_CAPACITY", "lots")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err == nil || !strings.Contains(err.Error(), "ROTA_DEFAULT_CAPACITY") {
		t.Errorf("expected integer error naming the variable, got %v", err)
	}
}

func TestLoadFrom_DotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	dotenv := "ROTA_METRICS_ADDR=127.0.0.1:9464\nROTA_UI_THEME=latte\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(dotenv), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	// godotenv sets the process env; clear what the file introduced.
	t.Cleanup(func() { _ = os.Unsetenv("ROTA_METRICS_ADDR") })
	// Already-set variables win over .env.
	t.Setenv("ROTA_UI_THEME", "frappe")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Metrics.Addr != "127.0.0.1:9464" {
		t.Errorf("expected metrics addr from .env, got %q", cfg.Metrics.Addr)
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe from the environment, got %s", cfg.UI.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"window start format", func(c *Config) { c.Grid.WindowStart = "9:00" }},
		{"window inverted", func(c *Config) { c.Grid.WindowStart = "18:00"; c.Grid.WindowEnd = "09:00" }},
		{"row unit zero", func(c *Config) { c.Grid.RowUnitMinutes = 0 }},
		{"row unit longer than window", func(c *Config) { c.Grid.RowUnitMinutes = 800 }},
		{"snap zero", func(c *Config) { c.Grid.SelectionSnapMinutes = 0 }},
		{"negative long press", func(c *Config) { c.Grid.LongPressThresholdMs = -1 }},
		{"zero capacity", func(c *Config) { c.Grid.DefaultCapacity = 0 }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mysql" }},
		{"sqlite without path", func(c *Config) { c.Storage.DBPath = "" }},
		{"postgres without url", func(c *Config) { c.Storage.Driver = DriverPostgres }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_Postgres(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = DriverPostgres
	cfg.Storage.DatabaseURL = "postgres://rota@localhost/rota"

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected postgres config to be valid, got: %v", err)
	}
}

func TestDefaultConfigPath_Env(t *testing.T) {
	t.Setenv("ROTA_CONFIG", "/etc/rota/config.toml")

	if got := DefaultConfigPath(); got != "/etc/rota/config.toml" {
		t.Errorf("DefaultConfigPath() = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Grid.WindowStart = "07:30"
	cfg.Grid.WindowEnd = "15:30"
	cfg.Grid.RowUnitMinutes = 30
	cfg.Storage.DBPath = filepath.Join(tmpDir, "rota.db")

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Grid.WindowStart != "07:30" {
		t.Errorf("expected window_start 07:30, got %s", loaded.Grid.WindowStart)
	}
	if loaded.Grid.WindowEnd != "15:30" {
		t.Errorf("expected window_end 15:30, got %s", loaded.Grid.WindowEnd)
	}
	if loaded.Grid.RowUnitMinutes != 30 {
		t.Errorf("expected row_unit_minutes 30, got %d", loaded.Grid.RowUnitMinutes)
	}
}
