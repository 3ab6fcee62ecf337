package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a slot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := a.lifecycle(cmd.Context())
			if err != nil {
				return err
			}

			if err := lc.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("deleting slot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted slot %s\n", args[0])
			return nil
		},
	}
}

func (a *App) setActiveCmd(active bool) *cobra.Command {
	name, short, verb := "deactivate", "Deactivate a slot", "Deactivated"
	if active {
		name, short, verb = "activate", "Activate a slot", "Activated"
	}

	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Long: short + `.

Inactive slots stay on the grid but never block other slots.
Activation does not re-check for overlaps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := a.lifecycle(cmd.Context())
			if err != nil {
				return err
			}

			if err := lc.SetActive(cmd.Context(), args[0], active); err != nil {
				return fmt.Errorf("%s slot: %w", name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s slot %s\n", verb, args[0])
			return nil
		},
	}
}
