package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calgrid/internal/event"
	"github.com/javiermolinar/calgrid/internal/ics"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export events as iCalendar",
		Long: `Write events to an .ics file, or to stdout when no output is given.

Without --start and --end every stored event is exported.`,
		Example: `  calgrid export -o calendar.ics
  calgrid export --start=2025-01-01 --end=2025-01-31`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			var (
				events []*event.Event
				err    error
			)
			if startDate == "" && endDate == "" {
				events, err = a.repo.ListAllEvents(ctx)
			} else {
				var r dateRange
				if r, err = a.parseRange(startDate, endDate); err != nil {
					return err
				}
				events, err = a.repo.ListEventsInRange(ctx, r.start, r.end)
			}
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				path, err := resolvePath(output)
				if err != nil {
					return err
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := ics.Write(w, events); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d events to %s\n", len(events), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (defaults to today when --end is set)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (defaults to start date)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
