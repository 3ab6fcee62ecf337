package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/grid"
	"github.com/javiermolinar/rota/internal/slot"
)

func (a *App) gridCmd() *cobra.Command {
	var (
		continuous bool
		height     int
		width      int
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the weekly grid",
		Long: `Print the week as a grid of day columns.

By default each line is one row unit (grid.row_unit_minutes). With
--continuous, slots are drawn at their exact positions on a surface
--height lines tall.`,
		Example: `  rota grid
  rota grid --continuous --height=36`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lc, err := a.lifecycle(cmd.Context())
			if err != nil {
				return err
			}

			if width <= 0 {
				width = termWidth(cmd.OutOrStdout())
			}
			colWidth := colWidthFor(width)
			out := cmd.OutOrStdout()
			slots := lc.Slots()
			cfg := a.config.GridLayout()

			if continuous {
				if height <= 0 {
					return fmt.Errorf("height must be positive")
				}
				blocks, unplaced := grid.Blocks(slots, cfg.Window(), height)
				fmt.Fprint(out, renderBlocks(blocks, cfg.Window(), height, colWidth))
				printUnplaced(out, unplaced)
				return nil
			}

			plan := grid.Layout(slots, cfg)
			fmt.Fprint(out, renderPlan(plan, colWidth))
			printUnplaced(out, plan.Unplaced)
			return nil
		},
	}

	cmd.Flags().BoolVar(&continuous, "continuous", false, "Place slots at exact positions")
	cmd.Flags().IntVar(&height, "height", 24, "Surface height in lines (with --continuous)")
	cmd.Flags().IntVar(&width, "width", 0, "Output width (default: terminal width)")

	return cmd
}

func printUnplaced(w io.Writer, slots []slot.Slot) {
	for _, s := range slots {
		fmt.Fprintf(w, "%s %s\n", formatWarning("not shown:"), s)
	}
}
