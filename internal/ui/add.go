package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/lifecycle"
	"github.com/javiermolinar/rota/internal/slot"
)

func (a *App) addCmd() *cobra.Command {
	var (
		day      string
		start    string
		end      string
		capacity int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new slot",
		Long: `Add a new weekly slot.

The slot must lie inside the scheduling window and must not overlap
an active slot on the same day.

Example:
  rota add --day=mon --start=10:00 --end=12:00 --capacity=2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := parseInput(day, start, end, capacity)
			if err != nil {
				return err
			}

			lc, err := a.lifecycle(cmd.Context())
			if err != nil {
				return err
			}

			created, err := lc.Create(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("creating slot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created slot %s: %s\n", created.ID, created)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day of week (mon..sun, required)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().IntVar(&capacity, "capacity", a.config.Grid.DefaultCapacity, "Number of places")

	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// parseInput converts flag values into a lifecycle input. Range and window
// checks are left to the orchestrator.
func parseInput(day, start, end string, capacity int) (lifecycle.Input, error) {
	d, err := slot.ParseWeekday(day)
	if err != nil {
		return lifecycle.Input{}, err
	}
	s, err := slot.ToMinutes(start)
	if err != nil {
		return lifecycle.Input{}, fmt.Errorf("start: %w", err)
	}
	e, err := slot.ToMinutes(end)
	if err != nil {
		return lifecycle.Input{}, fmt.Errorf("end: %w", err)
	}
	return lifecycle.Input{Day: d, Start: s, End: e, Capacity: capacity}, nil
}
