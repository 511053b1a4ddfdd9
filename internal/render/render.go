// Package render draws calendar views as terminal text.
//
// Widths are measured in terminal cells with x/ansi, so labels holding wide
// characters or escape sequences never break the grid.
package render

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	timeLabelWidth = 6
	minDayWidth    = 4

	// bar marks the left edge of an event block so blocks stay visible
	// without colors.
	bar      = "│"
	ellipsis = "…"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 100

// Options controls the geometry of a rendered view.
type Options struct {
	Width int // total width in cells; 0 means DefaultWidth

	// CellRows is the number of span rows drawn in a week or month cell.
	// 0 draws as many rows as the busiest day of each week row needs.
	CellRows int

	Today time.Time
}

// Renderer draws views with a fixed set of styles.
type Renderer struct {
	styles Styles
	opts   Options
}

// New creates a Renderer.
func New(styles Styles, opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	return &Renderer{styles: styles, opts: opts}
}

// fit truncates or pads text to exactly width cells.
func fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = ansi.Truncate(text, width, ellipsis)
	if w := ansi.StringWidth(text); w < width {
		text += strings.Repeat(" ", width-w)
	}
	return text
}

func cell(text string, width int, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	return style.Render(fit(text, width))
}

// share returns the width of part i when total cells are split into parts,
// handing the remainder to the leftmost parts.
func share(total, parts, i int) int {
	if parts <= 0 {
		return 0
	}
	w := total / parts
	if i < total%parts {
		w++
	}
	return w
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (r *Renderer) headerStyle(day time.Time) lipgloss.Style {
	switch {
	case sameDay(day, r.opts.Today):
		return r.styles.HeaderToday
	case isWeekend(day):
		return r.styles.HeaderWeekend
	default:
		return r.styles.Header
	}
}

func alternate(i int, even, odd lipgloss.Style) lipgloss.Style {
	if i%2 == 0 {
		return even
	}
	return odd
}
