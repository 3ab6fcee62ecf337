package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/slot"
	"github.com/javiermolinar/rota/internal/summary"
)

func (a *App) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show weekly totals",
		Long: `Show open hours, capacity and coverage of the weekly window.

Only active slots count toward open time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lc, err := a.lifecycle(cmd.Context())
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary.Summarize(lc.Slots(), lc.Window()))
			return nil
		},
	}
}

func printSummary(w io.Writer, stats summary.WeekStats) {
	active, inactive := stats.Slots()

	fmt.Fprintf(w, "%s\n", formatHeader("Week summary ("+stats.Window.String()+")"))
	fmt.Fprintf(w, "  Slots:     %d active, %d inactive\n", active, inactive)
	fmt.Fprintf(w, "  Open:      %s (%d%% of the window)\n", summary.FormatHours(stats.OpenMinutes()), stats.CoveragePercent())
	fmt.Fprintf(w, "  Places:    %s\n", summary.FormatHours(stats.PlaceMinutes()))
	if day, minutes, ok := stats.BusiestDay(); ok {
		fmt.Fprintf(w, "  Busiest:   %s (%s)\n", day, summary.FormatHours(minutes))
	}

	fmt.Fprintln(w)
	for _, day := range slot.Weekdays {
		ds := stats.DayStats[day]
		line := fmt.Sprintf("  %s  %-6s %d slot(s)", day.Short(), summary.FormatHours(ds.OpenMinutes), ds.ActiveSlots)
		if ds.ActiveSlots == 0 {
			line = formatMuted(line)
		}
		fmt.Fprintln(w, line)
	}
}
