package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calgrid/internal/event"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date     string
		start    string
		end      string
		allDay   bool
		days     int
		location string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new event",
		Long: `Add a timed or all-day event to your calendar.

Timed events need --start and --end. All-day events take --all-day and
optionally --days to cover several days.`,
		Example: `  calgrid add "Design review" --date=2025-01-10 --start=09:00 --end=10:30
  calgrid add "Conference" --date=2025-01-20 --all-day --days=3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				e   *event.Event
				err error
			)
			if allDay {
				e, err = event.NewAllDay(args[0], date, days, time.Local)
			} else {
				if start == "" || end == "" {
					return fmt.Errorf("--start and --end are required for timed events")
				}
				e, err = event.NewTimed(args[0], date, start, end, time.Local)
			}
			if err != nil {
				return err
			}
			e.Location = location

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.CreateEvent(context.Background(), e); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created event #%d: %s %s %s\n",
				e.ID,
				e.Title,
				e.Start.Format("2006-01-02"),
				FormatWhen(e),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, 24:00 for midnight)")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Create an all-day event")
	cmd.Flags().IntVar(&days, "days", 1, "Number of days an all-day event covers")
	cmd.Flags().StringVar(&location, "location", "", "Event location")

	cmd.MarkFlagsMutuallyExclusive("all-day", "start")
	cmd.MarkFlagsMutuallyExclusive("all-day", "end")

	return cmd
}
