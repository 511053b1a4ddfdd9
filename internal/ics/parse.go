// Package ics imports events from iCalendar (RFC 5545) data.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/calgrid/internal/debuglog"
	"github.com/javiermolinar/calgrid/internal/event"
)

// Parse errors.
var (
	ErrMissingStart = errors.New("missing DTSTART")
	ErrCancelled    = errors.New("event is cancelled")
)

const untitled = "(untitled)"

// Parse reads every VEVENT in r and returns the events in file order.
// VEVENTs that cannot be converted are skipped and logged.
// Recurrence rules are ignored: only the first occurrence is imported.
func Parse(r io.Reader) ([]*event.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var events []*event.Event
	for i, ve := range cal.Events() {
		e, err := convert(ve)
		if err != nil {
			debuglog.Log("ICS_EVENT_SKIPPED", map[string]any{
				"index": i,
				"uid":   propValue(ve, ical.ComponentPropertyUniqueId),
				"error": err.Error(),
			})
			continue
		}
		events = append(events, e)
	}

	debuglog.Log("ICS_PARSED", map[string]any{"event_count": len(events)})
	return events, nil
}

func convert(ve *ical.VEvent) (*event.Event, error) {
	if strings.EqualFold(propValue(ve, ical.ComponentPropertyStatus), "CANCELLED") {
		return nil, ErrCancelled
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || dtStart.Value == "" {
		return nil, ErrMissingStart
	}
	allDay := isDate(dtStart)

	var start, end time.Time
	var err error
	if allDay {
		start, err = ve.GetAllDayStartAt()
		if err != nil {
			return nil, fmt.Errorf("DTSTART: %w", err)
		}
		start = localMidnight(start)
		end = start.AddDate(0, 0, 1)
		if ve.GetProperty(ical.ComponentPropertyDtEnd) != nil {
			if end, err = ve.GetAllDayEndAt(); err != nil {
				return nil, fmt.Errorf("DTEND: %w", err)
			}
			end = localMidnight(end)
		}
	} else {
		start, err = ve.GetStartAt()
		if err != nil {
			return nil, fmt.Errorf("DTSTART: %w", err)
		}
		end = start
		if ve.GetProperty(ical.ComponentPropertyDtEnd) != nil {
			if end, err = ve.GetEndAt(); err != nil {
				return nil, fmt.Errorf("DTEND: %w", err)
			}
		}
		start, end = start.Local(), end.Local()
	}

	title := strings.TrimSpace(propValue(ve, ical.ComponentPropertySummary))
	if title == "" {
		title = untitled
	}

	e, err := event.New(title, start, end, allDay)
	if err != nil {
		return nil, err
	}
	e.UID = propValue(ve, ical.ComponentPropertyUniqueId)
	e.Location = propValue(ve, ical.ComponentPropertyLocation)
	return e, nil
}

// isDate reports whether a DTSTART holds a date rather than a date-time,
// either through VALUE=DATE or a value without a time part.
func isDate(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// localMidnight keeps the calendar date of t and anchors it to local time.
func localMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}
