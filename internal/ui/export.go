package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/dateutil"
	"github.com/javiermolinar/rota/internal/export"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		week   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export active slots as an iCalendar feed",
		Long: `Write every active slot as a weekly recurring event.

The recurrence starts in the week given by --week: this-week (default),
next-week, or any date (YYYY-MM-DD) inside the wanted week.`,
		Example: `  rota export > rota.ics
  rota export --week=next-week -o rota.ics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			anchor, err := dateutil.ParseAnchor(week, time.Now())
			if err != nil {
				return err
			}

			lc, err := a.lifecycle(cmd.Context())
			if err != nil {
				return err
			}

			toFile := output != "" && output != "-"
			var (
				w io.Writer = cmd.OutOrStdout()
				f *os.File
			)
			if toFile {
				f, err = os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			slots := lc.Slots()
			if err := export.Write(w, slots, export.Options{Anchor: anchor}); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}

			if toFile {
				if err := f.Close(); err != nil {
					return fmt.Errorf("closing %s: %w", output, err)
				}
				active := 0
				for _, s := range slots {
					if s.Active {
						active++
					}
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d slot(s) to %s\n", active, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "First week of the recurrence (this-week, next-week, YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
