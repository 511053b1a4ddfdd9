package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/calgrid/internal/debuglog"
)

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if !debuglog.Enabled() {
		return
	}
	debuglog.Log("KEY_PRESS", map[string]any{
		"key":  msg.String(),
		"type": fmt.Sprintf("%d", msg.Type),
	})
}

// LogRelayout logs a layout pass that was actually run.
func LogRelayout(m Model, reason string) {
	debuglog.Log("RELAYOUT", map[string]any{
		"generation": m.generation,
		"mode":       m.mode.String(),
		"anchor":     m.anchor.Format("2006-01-02"),
		"compress":   m.opts.CompressWeekend,
		"reason":     reason,
	})
}

// LogError logs an error with context.
func LogError(context string, err error) {
	if err == nil {
		return
	}
	debuglog.Log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}
