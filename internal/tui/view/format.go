package view

import "github.com/charmbracelet/x/ansi"

// FitLine cuts s to width cells, marking the cut with an ellipsis.
func FitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
