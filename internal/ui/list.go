package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calgrid/internal/dateutil"
	"github.com/javiermolinar/calgrid/internal/event"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List all events overlapping a date range.

If no dates are specified, lists today's events.
If only --start is specified, lists events for that single day.
If both --start and --end are specified, lists events in that range (inclusive).
Dates accept YYYY-MM-DD or words like today, tomorrow, friday or next-week.`,
		Example: `  calgrid list
  calgrid list --start=2025-01-15
  calgrid list --start=monday --end=sunday`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.parseRange(startDate, endDate)
			if err != nil {
				return err
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			events, err := a.repo.ListEventsInRange(context.Background(), r.start, r.end)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No events found in the specified date range.")
				return nil
			}

			// Print events grouped by the first visible day they touch
			width := titleWidth()
			var currentDate string
			for _, e := range events {
				date := r.firstDay(e).Format("Mon 2006-01-02")
				if date != currentDate {
					if currentDate != "" {
						fmt.Fprintln(out)
					}
					fmt.Fprintln(out, formatHeader("=== "+date+" ==="))
					currentDate = date
				}
				PrintEventRow(out, e, width)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatStats(fmt.Sprintf("%d events", len(events))))

			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (defaults to start date)")

	return cmd
}

// dateRange is a half-open range of whole days.
type dateRange struct {
	start, end time.Time
}

// firstDay returns the day e is listed under: its start day, or the first
// day of the range for events that began earlier.
func (r dateRange) firstDay(e *event.Event) time.Time {
	day := dateutil.TruncateToDay(e.Start)
	if day.Before(r.start) {
		return r.start
	}
	return day
}

// parseRange resolves --start and --end arguments into whole days, with an
// inclusive end date.
func (a *App) parseRange(startArg, endArg string) (dateRange, error) {
	now := a.now()
	start, err := dateutil.ParseRelativeDate(startArg, now)
	if err != nil {
		return dateRange{}, fmt.Errorf("start date: %w", err)
	}
	end := start
	if endArg != "" {
		if end, err = dateutil.ParseRelativeDate(endArg, now); err != nil {
			return dateRange{}, fmt.Errorf("end date: %w", err)
		}
	}
	if end.Before(start) {
		return dateRange{}, fmt.Errorf("end date %s is before start date %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return dateRange{start: start, end: end.AddDate(0, 0, 1)}, nil
}
