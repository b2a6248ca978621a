// Package invite exports a selected meeting time as an iCalendar document.
package invite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/codeGROOVE-dev/meetsync/pkg/meeting"
	"github.com/codeGROOVE-dev/meetsync/pkg/tzconvert"
)

const (
	prodID          = "-//codeGROOVE//meetsync//EN"
	uidDomain       = "meetsync"
	defaultSummary  = "Meeting"
	defaultDuration = 30 * time.Minute
)

// ErrNoZones is returned when no zone is enabled.
var ErrNoZones = errors.New("no enabled zones")

// Invite describes one meeting to export.
type Invite struct {
	Start    time.Time
	UID      string // generated when empty
	Summary  string
	Zones    []meeting.Zone
	Duration time.Duration
	Is24Hour bool
}

// Lines returns "Name: local time" for each enabled zone, in order.
func Lines(instant time.Time, zones []meeting.Zone, is24Hour bool) ([]string, error) {
	enabled := meeting.Enabled(zones)
	lines := make([]string, 0, len(enabled))
	for i := range enabled {
		local, err := tzconvert.LocalTime(instant, enabled[i].Timezone)
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", enabled[i].ID, err)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", enabled[i].Name, tzconvert.FormatMinute(tzconvert.MinuteOfDay(local), is24Hour)))
	}
	return lines, nil
}

// Text returns the plain-text meeting block listing every enabled zone.
func Text(instant time.Time, zones []meeting.Zone, is24Hour bool) (string, error) {
	lines, err := Lines(instant, zones, is24Hour)
	if err != nil {
		return "", err
	}
	return "Meeting Time:\n" + strings.Join(lines, "\n"), nil
}

// Build creates a calendar with a single event for the invite.
// now stamps DTSTAMP.
func Build(inv *Invite, now time.Time) (*ical.Calendar, error) {
	if len(meeting.Enabled(inv.Zones)) == 0 {
		return nil, ErrNoZones
	}
	description, err := Text(inv.Start, inv.Zones, inv.Is24Hour)
	if err != nil {
		return nil, err
	}

	uid := inv.UID
	if uid == "" {
		uid = uuid.NewString()
	}
	summary := inv.Summary
	if summary == "" {
		summary = defaultSummary
	}
	duration := inv.Duration
	if duration <= 0 {
		duration = defaultDuration
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uid+"@"+uidDomain)
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetText(ical.PropDescription, description)

	// Times are stamped in UTC so the document needs no VTIMEZONE blocks.
	stamp := ical.NewProp(ical.PropDateTimeStamp)
	stamp.SetDateTime(now.UTC())
	event.Props.Set(stamp)

	start := ical.NewProp(ical.PropDateTimeStart)
	start.SetDateTime(inv.Start.UTC())
	event.Props.Set(start)

	end := ical.NewProp(ical.PropDateTimeEnd)
	end.SetDateTime(inv.Start.Add(duration).UTC())
	event.Props.Set(end)

	cal.Children = append(cal.Children, event.Component)
	return cal, nil
}

// Encode writes the invite as an .ics document.
func Encode(w io.Writer, inv *Invite, now time.Time) error {
	cal, err := Build(inv, now)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return fmt.Errorf("encoding invite: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing invite: %w", err)
	}
	return nil
}
