// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/rota/internal/grid"
	"github.com/javiermolinar/rota/internal/selection"
	"github.com/javiermolinar/rota/internal/slot"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

// GridConfig holds the scheduling window and interaction settings.
type GridConfig struct {
	WindowStart          string `toml:"window_start"`            // e.g., "10:00"
	WindowEnd            string `toml:"window_end"`              // e.g., "22:00"
	RowUnitMinutes       int    `toml:"row_unit_minutes"`        // minutes per grid row
	SelectionSnapMinutes int    `toml:"selection_snap_minutes"`  // selection rounding step
	LongPressThresholdMs int    `toml:"long_press_threshold_ms"` // coarse pointer hold time
	DefaultCapacity      int    `toml:"default_capacity"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Driver      string `toml:"driver"`       // "sqlite" or "postgres"
	DBPath      string `toml:"db_path"`      // sqlite file
	DatabaseURL string `toml:"database_url"` // postgres://...
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// LogConfig holds the debug log settings. The log is only written with --debug.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	Path  string `toml:"path"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Addr string `toml:"addr"` // e.g., "127.0.0.1:9464"; empty disables
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			WindowStart:          "10:00",
			WindowEnd:            "22:00",
			RowUnitMinutes:       60,
			SelectionSnapMinutes: 30,
			LongPressThresholdMs: 350,
			DefaultCapacity:      1,
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			Level: "debug",
			Path:  "rota-debug.log",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rota.db"
	}
	return filepath.Join(home, ".local", "share", "rota", "rota.db")
}

// DefaultConfigPath returns the config file path. ROTA_CONFIG overrides it.
func DefaultConfigPath() string {
	if v := os.Getenv("ROTA_CONFIG"); v != "" {
		return expandPath(v)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "rota", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, loads .env files
// (next to the config file, then the working directory), then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env"), ".env"); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.Path = expandPath(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// loadDotEnv loads each existing file into the process environment.
// Variables already set are never overridden.
func loadDotEnv(paths ...string) error {
	seen := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true

		if _, err := os.Stat(abs); err != nil {
			continue
		}
		if err := godotenv.Load(abs); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	// Grid overrides
	if v := os.Getenv("ROTA_WINDOW_START"); v != "" {
		cfg.Grid.WindowStart = v
	}
	if v := os.Getenv("ROTA_WINDOW_END"); v != "" {
		cfg.Grid.WindowEnd = v
	}
	ints := []struct {
		env string
		dst *int
	}{
		{"ROTA_ROW_UNIT_MINUTES", &cfg.Grid.RowUnitMinutes},
		{"ROTA_SELECTION_SNAP_MINUTES", &cfg.Grid.SelectionSnapMinutes},
		{"ROTA_LONG_PRESS_THRESHOLD_MS", &cfg.Grid.LongPressThresholdMs},
		{"ROTA_DEFAULT_CAPACITY", &cfg.Grid.DefaultCapacity},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", o.env, v)
		}
		*o.dst = n
	}

	// Storage overrides
	if v := os.Getenv("ROTA_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("ROTA_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("ROTA_DATABASE_URL"); v != "" {
		cfg.Storage.DatabaseURL = v
	}

	// UI overrides
	if v := os.Getenv("ROTA_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	// Log and metrics overrides
	if v := os.Getenv("ROTA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ROTA_LOG_PATH"); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv("ROTA_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}

	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	w, err := c.Window()
	if err != nil {
		return err
	}
	if c.Grid.RowUnitMinutes <= 0 {
		return errors.New("row_unit_minutes must be positive")
	}
	if c.Grid.RowUnitMinutes > w.Length() {
		return fmt.Errorf("row_unit_minutes (%d) exceeds the window length (%d)", c.Grid.RowUnitMinutes, w.Length())
	}
	if c.Grid.SelectionSnapMinutes <= 0 {
		return errors.New("selection_snap_minutes must be positive")
	}
	if c.Grid.LongPressThresholdMs < 0 {
		return errors.New("long_press_threshold_ms cannot be negative")
	}
	if c.Grid.DefaultCapacity <= 0 {
		return errors.New("default_capacity must be positive")
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set")
		}
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("database_url must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

// Window parses the configured scheduling window.
func (c *Config) Window() (slot.Window, error) {
	w, err := slot.NewWindow(c.Grid.WindowStart, c.Grid.WindowEnd)
	if err != nil {
		return slot.Window{}, fmt.Errorf("window_start/window_end: %w", err)
	}
	return w, nil
}

// LongPress returns the long-press threshold as a duration.
func (c *Config) LongPress() time.Duration {
	return time.Duration(c.Grid.LongPressThresholdMs) * time.Millisecond
}

// GridLayout returns the layout settings. Call Validate first.
func (c *Config) GridLayout() grid.Config {
	w, _ := c.Window()
	return grid.NewConfig(w, c.Grid.RowUnitMinutes)
}

// Selection returns the selection settings. Call Validate first.
func (c *Config) Selection() selection.Config {
	w, _ := c.Window()
	return selection.Config{
		Window:    w,
		Snap:      c.Grid.SelectionSnapMinutes,
		LongPress: c.LongPress(),
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
