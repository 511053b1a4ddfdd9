package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/calgrid/internal/theme"
)

// Styles holds all lipgloss styles used to draw calendar grids.
type Styles struct {
	Title         lipgloss.Style
	Header        lipgloss.Style
	HeaderToday   lipgloss.Style
	HeaderWeekend lipgloss.Style
	TimeLabel     lipgloss.Style
	Empty         lipgloss.Style
	Weekend       lipgloss.Style

	Event     lipgloss.Style
	EventAlt  lipgloss.Style // adjacent columns
	AllDay    lipgloss.Style
	AllDayAlt lipgloss.Style // adjacent banner rows

	More lipgloss.Style // "+N more" and hidden event counters
}

// NewStyles derives the styles from a palette.
func NewStyles(p *theme.Palette) Styles {
	block := func(bg, fg lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Background(bg).Foreground(fg)
	}
	return Styles{
		Title:         lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Header:        lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgHighlight).Bold(true),
		HeaderToday:   lipgloss.NewStyle().Foreground(p.TextOnToday).Background(p.Today).Bold(true),
		HeaderWeekend: lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.BgHighlight),
		TimeLabel:     lipgloss.NewStyle().Foreground(p.FgMuted),
		Empty:         lipgloss.NewStyle(),
		Weekend:       lipgloss.NewStyle().Background(p.Weekend),

		Event:     block(p.EventBg, p.TextOnEvent),
		EventAlt:  block(p.EventBgAlt, p.TextOnEvent),
		AllDay:    block(p.AllDayBg, p.TextOnAllDay),
		AllDayAlt: block(p.AllDayBgAlt, p.TextOnAllDay),

		More: lipgloss.NewStyle().Foreground(p.Warning).Italic(true),
	}
}
