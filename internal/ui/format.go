package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/calgrid/internal/event"
)

// rowOverhead is the width of "  #ID  HH:MM-HH:MM  " plus the duration suffix.
const rowOverhead = 34

// FormatDuration formats a duration as a short human-readable string.
func FormatDuration(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes <= 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case hours >= 24 && hours%24 == 0 && mins == 0:
		return fmt.Sprintf("%dd", hours/24)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
}

// FormatWhen describes when an event happens relative to its start day.
func FormatWhen(e *event.Event) string {
	switch {
	case e.AllDay && e.Days() == 1:
		return "all day"
	case e.AllDay:
		return fmt.Sprintf("all day, %d days", e.Days())
	case e.IsLong():
		return e.Start.Format("15:04") + " → " + e.End.Format("Jan 2 15:04")
	default:
		return e.Start.Format("15:04") + "-" + e.End.Format("15:04")
	}
}

// PrintEventRow prints one event of a listing, truncating the title to
// titleWidth cells.
func PrintEventRow(w io.Writer, e *event.Event, titleWidth int) {
	when := FormatWhen(e)
	if e.AllDay {
		when = formatAllDay(when)
	} else {
		when = formatTime(when)
	}

	title := e.Title
	if titleWidth > 0 {
		title = ansi.Truncate(title, titleWidth, "…")
	}
	if e.Location != "" {
		title += formatMuted(" @ " + e.Location)
	}

	suffix := ""
	if !e.AllDay {
		suffix = "  " + formatMuted(FormatDuration(e.Duration()))
	}
	fmt.Fprintf(w, "  #%-4d %s  %s%s\n", e.ID, when, title, suffix)
}

// titleWidth returns the title budget for listings on the current terminal.
func titleWidth() int {
	return max(termWidth()-rowOverhead, 20)
}
