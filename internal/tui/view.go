package tui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/calgrid/internal/render"
	"github.com/javiermolinar/calgrid/internal/tui/view"
)

const footerLines = 2

// View renders the current calendar view above a status and help footer.
func (m Model) View() string {
	footer := view.RenderFooter(view.FooterViewState{
		InnerW:     m.width,
		StatusLine: m.statusLine(),
		HelpLine:   m.help.View(m.keys),
		Bg:         m.styles.colorBg,
	})
	return view.Render(view.ViewState{
		Width:            m.width,
		Height:           m.height,
		Body:             m.body(),
		Footer:           footer,
		Bg:               m.styles.colorBg,
		EmptyPlaceholder: "Loading...",
	})
}

func (m Model) body() string {
	r := render.New(m.styles.Calendar, render.Options{
		Width:    m.width,
		CellRows: m.cellRows(),
		Today:    m.nowFunc(),
	})
	switch {
	case m.err != nil:
		return m.styles.ErrorStyle.Render("error: " + m.err.Error())
	case m.dayView != nil:
		return r.Day(*m.dayView)
	case m.monthView != nil:
		return r.Month(*m.monthView)
	default:
		return "Loading..."
	}
}

// cellRows fits the week rows of a month or week view into the screen.
func (m Model) cellRows() int {
	if m.monthView == nil {
		return 0
	}
	avail := m.height - footerLines - 1 // title
	if m.monthView.MultiWeek {
		avail-- // weekday header
	}
	weeks := max(m.monthView.Weeks, 1)
	rows := avail/weeks - 1 // date header of each week
	return min(max(rows, 1), m.opts.MaxRowsPerCell)
}

func (m Model) statusLine() string {
	if m.prompting {
		return m.prompt.View()
	}
	if m.statusMsg != "" {
		return m.styles.ErrorStyle.Render(m.statusMsg)
	}

	parts := []string{strings.ToUpper(m.mode.String()[:1]) + m.mode.String()[1:], m.anchor.Format("Mon Jan 2 2006")}
	switch m.mode {
	case ModeDay:
		parts = append(parts, fmt.Sprintf("%d days", m.days))
	case ModeMonth:
		parts = append(parts, fmt.Sprintf("%d weeks", m.weeks))
	}
	if m.mode != ModeDay && m.opts.CompressWeekend {
		parts = append(parts, "weekend compressed")
	}
	if m.loading {
		parts = append(parts, "loading...")
	}
	return m.styles.StatusStyle.Render(strings.Join(parts, " · "))
}
