package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/slot"
)

func (a *App) listCmd() *cobra.Command {
	var (
		day        string
		activeOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List slots grouped by day",
		Long: `List the weekly slots, grouped by day and sorted by start time.

Inactive slots are shown dimmed unless --active is given.`,
		Example: `  rota list
  rota list --day=tue
  rota list --active`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filterDay *slot.Weekday
			if day != "" {
				d, err := slot.ParseWeekday(day)
				if err != nil {
					return err
				}
				filterDay = &d
			}

			lc, err := a.lifecycle(cmd.Context())
			if err != nil {
				return err
			}

			var slots []slot.Slot
			for _, s := range lc.Slots() {
				if filterDay != nil && s.Day != *filterDay {
					continue
				}
				if activeOnly && !s.Active {
					continue
				}
				slots = append(slots, s)
			}

			out := cmd.OutOrStdout()
			if len(slots) == 0 {
				fmt.Fprintln(out, "No slots found.")
				return nil
			}
			printSlotList(out, slots)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Only show this day (mon, tuesday, ...)")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only show active slots")

	return cmd
}
