package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/calgrid/internal/event"
)

// Write serializes events as a VCALENDAR.
// Events without a UID get one derived from their ID.
func Write(w io.Writer, events []*event.Event) error {
	cal := ical.NewCalendarFor("calgrid")
	cal.SetMethod(ical.MethodPublish)

	for _, e := range events {
		uid := e.UID
		if uid == "" {
			uid = fmt.Sprintf("calgrid-%d@localhost", e.ID)
		}
		ve := cal.AddEvent(uid)

		stamp := e.CreatedAt
		if stamp.IsZero() {
			stamp = time.Now()
		}
		ve.SetDtStampTime(stamp)
		ve.SetSummary(e.Title)
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}

		if e.AllDay {
			ve.SetAllDayStartAt(e.Start)
			ve.SetAllDayEndAt(e.End)
		} else {
			ve.SetStartAt(e.Start)
			ve.SetEndAt(e.End)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}
