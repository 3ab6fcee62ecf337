package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/slot"
	"github.com/javiermolinar/rota/internal/tui/commands"
)

// Run starts the TUI and blocks until the user quits.
func Run(lc commands.Lifecycle, lister slot.Lister, cfg *config.Config, logger *zap.Logger) error {
	SetDebugLogger(logger)
	debugLog.Info("starting",
		zap.Stringer("window", cfg.GridLayout().Window()),
		zap.Int("row_unit", cfg.Grid.RowUnitMinutes),
		zap.String("theme", cfg.UI.Theme),
	)

	p := tea.NewProgram(
		New(lc, lister, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	if err != nil {
		debugLog.Error("program exited", zap.Error(err))
	}
	return err
}
