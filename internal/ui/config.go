package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  rota config
  rota config --show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath(), show)
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the configuration and exit")
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string, showOnly bool) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if errors.Is(fileErr, os.ErrNotExist) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)
	if showOnly {
		return nil
	}

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Grid.WindowStart = promptValue(reader, out, "Window start", cfg.Grid.WindowStart)
	cfg.Grid.WindowEnd = promptValue(reader, out, "Window end", cfg.Grid.WindowEnd)
	cfg.Grid.RowUnitMinutes = promptInt(reader, out, "Row unit (minutes)", cfg.Grid.RowUnitMinutes)
	cfg.Grid.SelectionSnapMinutes = promptInt(reader, out, "Selection snap (minutes)", cfg.Grid.SelectionSnapMinutes)
	cfg.Grid.LongPressThresholdMs = promptInt(reader, out, "Long press threshold (ms)", cfg.Grid.LongPressThresholdMs)
	cfg.Grid.DefaultCapacity = promptInt(reader, out, "Default capacity", cfg.Grid.DefaultCapacity)
	cfg.Storage.Driver = promptValue(reader, out, "Storage driver (sqlite, postgres)", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverPostgres {
		cfg.Storage.DatabaseURL = promptValue(reader, out, "Database URL", cfg.Storage.DatabaseURL)
	} else {
		cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	}
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Metrics.Addr = promptValue(reader, out, "Metrics address (empty to disable)", cfg.Metrics.Addr)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[grid]")
	fmt.Fprintf(out, "  window_start            = %s\n", cfg.Grid.WindowStart)
	fmt.Fprintf(out, "  window_end              = %s\n", cfg.Grid.WindowEnd)
	fmt.Fprintf(out, "  row_unit_minutes        = %d\n", cfg.Grid.RowUnitMinutes)
	fmt.Fprintf(out, "  selection_snap_minutes  = %d\n", cfg.Grid.SelectionSnapMinutes)
	fmt.Fprintf(out, "  long_press_threshold_ms = %d\n", cfg.Grid.LongPressThresholdMs)
	fmt.Fprintf(out, "  default_capacity        = %d\n", cfg.Grid.DefaultCapacity)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  driver                  = %s\n", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverPostgres {
		fmt.Fprintf(out, "  database_url            = %s\n", redactURL(cfg.Storage.DatabaseURL))
	} else {
		fmt.Fprintf(out, "  db_path                 = %s\n", cfg.Storage.DBPath)
	}
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme                   = %s\n", cfg.UI.Theme)
	if cfg.Metrics.Addr != "" {
		fmt.Fprintln(out, "\n[metrics]")
		fmt.Fprintf(out, "  addr                    = %s\n", cfg.Metrics.Addr)
	}
}

// redactURL hides the password of a connection URL.
func redactURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return raw
	}
	user, _, hasPass := strings.Cut(creds, ":")
	if !hasPass {
		return raw
	}
	return scheme + "://" + user + ":xxxxx@" + host
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
