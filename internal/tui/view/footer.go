package view

import "github.com/charmbracelet/lipgloss"

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW     int
	StatusLine string
	HelpLine   string
	Bg         lipgloss.Color
}

// RenderFooter renders the status and help lines.
func RenderFooter(state FooterViewState) string {
	s := FitLine(state.StatusLine, state.InnerW) + "\n" + FitLine(state.HelpLine, state.InnerW)
	return PlaceBox(state.InnerW, 2, lipgloss.Bottom, s, state.Bg)
}
