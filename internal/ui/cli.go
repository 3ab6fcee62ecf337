// Package ui implements the rota command line.
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/lifecycle"
	"github.com/javiermolinar/rota/internal/logging"
	"github.com/javiermolinar/rota/internal/slot"
	"github.com/javiermolinar/rota/internal/store"
	"github.com/javiermolinar/rota/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo    slot.Repository
	config  *config.Config
	orch    *lifecycle.Orchestrator
	logger  *zap.Logger
	metrics *metricsServer
	root    *cobra.Command
	debug   bool // Enable debug logging
	noColor bool
}

// NewApp creates a new CLI application. A nil repo is opened from the
// storage config on first use.
func NewApp(repo slot.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, logger: zap.NewNop()}

	a.root = &cobra.Command{
		Use:   "rota",
		Short: "A weekly grid of open time slots",
		Long: `Rota manages a recurring weekly schedule of open slots.

Each slot is a day of the week, a start and end time inside the
scheduling window, and a capacity. Active slots may not overlap.
Running rota without a subcommand opens the interactive grid.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.noColor {
				DisableColor()
			}
			return a.setupLogger()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			lc, err := a.lifecycle(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(lc, a.repo, a.config, a.logger)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes to log.path)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.updateCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.setActiveCmd(true))
	a.root.AddCommand(a.setActiveCmd(false))
	a.root.AddCommand(a.gridCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.summaryCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rota %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) setupLogger() error {
	if !a.debug {
		return nil
	}
	l, err := logging.New(logging.Options{
		Enabled: true,
		Level:   a.config.Log.Level,
		Path:    a.config.Log.Path,
	})
	if err != nil {
		return fmt.Errorf("setting up debug log: %w", err)
	}
	a.logger = l
	return nil
}

func (a *App) ensureRepo(ctx context.Context) error {
	if a.repo != nil {
		return nil
	}
	repo, err := store.Open(ctx, a.config.Storage)
	if err != nil {
		return err
	}
	a.repo = repo
	return nil
}

// lifecycle returns the orchestrator with a fresh slot snapshot.
func (a *App) lifecycle(ctx context.Context) (*lifecycle.Orchestrator, error) {
	if err := a.ensureRepo(ctx); err != nil {
		return nil, err
	}

	if a.orch == nil {
		var metrics *lifecycle.Metrics
		if addr := a.config.Metrics.Addr; addr != "" {
			srv, err := startMetricsServer(addr, a.logger)
			if err != nil {
				return nil, err
			}
			a.metrics = srv
			metrics = srv.lifecycle
		}
		a.orch = lifecycle.New(a.repo, a.config.GridLayout().Window(),
			lifecycle.WithLogger(a.logger.Named("lifecycle")),
			lifecycle.WithMetrics(metrics),
		)
	}

	if _, err := a.orch.Refresh(ctx, a.repo); err != nil {
		return nil, fmt.Errorf("loading slots: %w", err)
	}
	return a.orch, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Close releases the repository, the metrics listener, and flushes the log.
func (a *App) Close() error {
	var errs []error
	if a.metrics != nil {
		errs = append(errs, a.metrics.Close())
	}
	if a.repo != nil {
		errs = append(errs, a.repo.Close())
	}
	_ = a.logger.Sync()
	return errors.Join(errs...)
}
