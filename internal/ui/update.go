package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/lifecycle"
	"github.com/javiermolinar/rota/internal/slot"
)

func (a *App) updateCmd() *cobra.Command {
	var (
		day      string
		start    string
		end      string
		capacity int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a slot's day, times, or capacity",
		Long: `Change an existing slot. Only the flags given are changed.

Example:
  rota update 6f1c... --start=11:00 --end=13:00
  rota update 6f1c... --capacity=4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := a.lifecycle(cmd.Context())
			if err != nil {
				return err
			}

			id := args[0]
			current, ok := lc.Find(id)
			if !ok {
				return fmt.Errorf("slot %s: %w", id, slot.ErrSlotNotFound)
			}

			in, err := applyFlags(cmd, lifecycle.FromSlot(current), day, start, end, capacity)
			if err != nil {
				return err
			}

			updated, err := lc.Update(cmd.Context(), id, in)
			if err != nil {
				return fmt.Errorf("updating slot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated slot %s: %s\n", updated.ID, updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day of week (mon..sun)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Number of places")

	return cmd
}

// applyFlags overlays the flags the user actually set onto in.
func applyFlags(cmd *cobra.Command, in lifecycle.Input, day, start, end string, capacity int) (lifecycle.Input, error) {
	flags := cmd.Flags()
	if flags.Changed("day") {
		d, err := slot.ParseWeekday(day)
		if err != nil {
			return in, err
		}
		in.Day = d
	}
	if flags.Changed("start") {
		m, err := slot.ToMinutes(start)
		if err != nil {
			return in, fmt.Errorf("start: %w", err)
		}
		in.Start = m
	}
	if flags.Changed("end") {
		m, err := slot.ToMinutes(end)
		if err != nil {
			return in, fmt.Errorf("end: %w", err)
		}
		in.End = m
	}
	if flags.Changed("capacity") {
		in.Capacity = capacity
	}
	return in, nil
}
