package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/calgrid/internal/calendar"
	"github.com/javiermolinar/calgrid/internal/dateutil"
	"github.com/javiermolinar/calgrid/internal/layout"
	"github.com/javiermolinar/calgrid/internal/render"
	"github.com/javiermolinar/calgrid/internal/theme"
)

// viewFlags are shared by the day, week and month commands.
type viewFlags struct {
	date    string
	width   int
	copy    bool
	noColor bool
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Date to show (YYYY-MM-DD, today, friday, next-week...)")
	cmd.Flags().IntVar(&f.width, "width", 0, "Output width in cells (default: terminal width)")
	cmd.Flags().BoolVar(&f.copy, "copy", false, "Copy the view to the clipboard as plain text")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable colors")
}

func (a *App) dayCmd() *cobra.Command {
	var (
		flags viewFlags
		days  int
	)

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Print a time grid of one or more days",
		Example: `  calgrid day
  calgrid day --date=tomorrow --days=3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days == 0 {
				days = a.config.View.DaysShown
			}
			if days < 1 || days > layout.MaxDays {
				return fmt.Errorf("days must be between 1 and %d, got %d", layout.MaxDays, days)
			}
			return a.runView(cmd, flags, func(ctx context.Context, l *calendar.Loader, r *render.Renderer, anchor time.Time) (string, error) {
				v, err := l.Day(ctx, anchor, days)
				if err != nil {
					return "", err
				}
				return r.Day(v), nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&days, "days", 0, "Number of days to show (default from config)")
	return cmd
}

func (a *App) weekCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the week containing a date",
		Example: `  calgrid week
  calgrid week --date=next-week --no-color`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runView(cmd, flags, func(ctx context.Context, l *calendar.Loader, r *render.Renderer, anchor time.Time) (string, error) {
				v, err := l.Week(ctx, anchor)
				if err != nil {
					return "", err
				}
				return r.Month(v), nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *App) monthCmd() *cobra.Command {
	var (
		flags viewFlags
		weeks int
	)

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print the month grid containing a date",
		Example: `  calgrid month
  calgrid month --date=2025-02-01 --weeks=6 --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if weeks == 0 {
				weeks = a.config.View.WeeksShown
			}
			if weeks < 1 || weeks > layout.MaxWeeks {
				return fmt.Errorf("weeks must be between 1 and %d, got %d", layout.MaxWeeks, weeks)
			}
			return a.runView(cmd, flags, func(ctx context.Context, l *calendar.Loader, r *render.Renderer, anchor time.Time) (string, error) {
				v, err := l.Month(ctx, anchor, weeks)
				if err != nil {
					return "", err
				}
				return r.Month(v), nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Number of week rows to show (default from config)")
	return cmd
}

type drawFunc func(ctx context.Context, l *calendar.Loader, r *render.Renderer, anchor time.Time) (string, error)

// runView loads, renders and prints a view, copying it when asked.
func (a *App) runView(cmd *cobra.Command, flags viewFlags, draw drawFunc) error {
	if flags.noColor {
		DisableColor()
	}

	now := a.now()
	anchor, err := dateutil.ParseRelativeDate(flags.date, now)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	if err := a.ensureRepo(); err != nil {
		return err
	}

	r, err := a.renderer(flags.width, now)
	if err != nil {
		return err
	}
	loader := calendar.NewLoader(a.repo, calendar.OptionsFromConfig(a.config))

	out, err := draw(context.Background(), loader, r, anchor)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	if flags.copy {
		if err := a.copy(ansi.Strip(out)); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), formatMuted("Copied to clipboard"))
	}
	return nil
}

func (a *App) renderer(width int, now time.Time) (*render.Renderer, error) {
	t, err := theme.Load(a.config.UI.Theme)
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}
	if width <= 0 {
		width = termWidth()
	}
	styles := render.NewStyles(theme.NewPalette(t))
	return render.New(styles, render.Options{Width: width, Today: now}), nil
}
