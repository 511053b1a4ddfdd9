// Package view provides view composition helpers for the TUI.
package view

import "github.com/charmbracelet/lipgloss"

// ViewState contains pre-rendered sections of the screen.
type ViewState struct {
	Width            int
	Height           int
	Body             string
	Footer           string
	Bg               lipgloss.Color
	EmptyPlaceholder string
}

// Render composes the final view output: the body fills the screen above
// the footer and is cut when it does not fit.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}

	footerH := 0
	if state.Footer != "" {
		footerH = lipgloss.Height(state.Footer)
	}
	bodyH := state.Height - footerH
	if bodyH <= 0 {
		return PadLinesWithBackground(state.Footer, state.Width, state.Height, state.Bg)
	}

	body := PlaceBox(state.Width, bodyH, lipgloss.Top, state.Body, state.Bg)
	if footerH == 0 {
		return body
	}
	return body + "\n" + state.Footer
}
