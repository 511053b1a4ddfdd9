package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/calgrid/internal/render"
	"github.com/javiermolinar/calgrid/internal/theme"
)

// Styles holds the viewer styles, derived from a theme.
type Styles struct {
	Calendar render.Styles

	colorBg lipgloss.Color

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	PromptStyle lipgloss.Style
	HelpStyle   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	return &Styles{
		Calendar:    render.NewStyles(p),
		colorBg:     p.Bg,
		StatusStyle: lipgloss.NewStyle().Foreground(p.Accent),
		ErrorStyle:  lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		PromptStyle: lipgloss.NewStyle().Foreground(p.Fg),
		HelpStyle:   lipgloss.NewStyle().Foreground(p.FgMuted),
	}
}
