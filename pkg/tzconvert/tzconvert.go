// Package tzconvert projects absolute instants onto the wall clock of a
// named timezone.
// Instants are passed around as time.Time; these helpers only derive the
// local representation for scoring and display.
package tzconvert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/meetsync/pkg/constants"
	"github.com/codeGROOVE-dev/meetsync/pkg/zonecache"
)

// ErrUnknownTimezone is returned for names that are neither IANA
// identifiers nor UTC offset labels.
var ErrUnknownTimezone = errors.New("unknown timezone")

// ErrMinuteOutOfRange is returned for minute-of-day values outside 0-1439.
var ErrMinuteOutOfRange = errors.New("minute of day out of range")

var locations = zonecache.New(1024, loadLocation, nil)

// Load resolves a timezone name.
// Accepted forms:
//   - IANA identifiers: "America/New_York", "Asia/Kolkata"
//   - "UTC" or offset labels: "UTC-4", "UTC+8", "UTC+5:30"
func Load(name string) (*time.Location, error) {
	loc, err := locations.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, errors.New("empty timezone name")
	}
	if offset, ok := parseUTCOffset(name); ok {
		if offset == 0 {
			return time.UTC, nil
		}
		return time.FixedZone(name, offset), nil
	}
	// time.LoadLocation treats "Local" as the process zone, which would make
	// results depend on the host.
	if name == "Local" {
		return nil, errors.New("ambiguous timezone name")
	}
	return time.LoadLocation(name)
}

// parseUTCOffset parses "UTC", "UTC-4", "UTC+8" and "UTC+5:30" into an
// offset in seconds east of UTC.
func parseUTCOffset(name string) (int, bool) {
	if !strings.HasPrefix(name, "UTC") {
		return 0, false
	}
	rest := name[3:]
	if rest == "" {
		return 0, true
	}

	sign := 1
	switch rest[0] {
	case '-':
		sign = -1
		rest = rest[1:]
	case '+':
		rest = rest[1:]
	default:
		return 0, false
	}

	hoursStr, minsStr, hasMins := strings.Cut(rest, ":")
	if !isDigits(hoursStr) || (hasMins && !isDigits(minsStr)) {
		return 0, false
	}
	hours, err := strconv.Atoi(hoursStr)
	if err != nil || hours > 14 {
		return 0, false
	}
	mins := 0
	if hasMins {
		mins, err = strconv.Atoi(minsStr)
		if err != nil || mins >= 60 {
			return 0, false
		}
	}
	return sign * (hours*3600 + mins*60), true
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// LocalTime returns instant as it reads on a wall clock in the named zone.
func LocalTime(instant time.Time, name string) (time.Time, error) {
	loc, err := Load(name)
	if err != nil {
		return time.Time{}, err
	}
	return instant.In(loc), nil
}

// LocalHour returns the wall-clock hour (0-23) of instant in the named zone,
// honouring that zone's daylight saving rules on the instant's date.
func LocalHour(instant time.Time, name string) (int, error) {
	local, err := LocalTime(instant, name)
	if err != nil {
		return 0, err
	}
	return local.Hour(), nil
}

// MinuteOfDay returns hour*60+minute of t in t's own location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// AtMinuteOfDay returns t with its hour and minute replaced by minute,
// interpreted in t's location. Date, seconds and nanoseconds are kept.
// On a daylight saving gap the result is normalized by time.Date.
func AtMinuteOfDay(t time.Time, minute int) (time.Time, error) {
	if minute < 0 || minute >= constants.MinutesPerDay {
		return time.Time{}, fmt.Errorf("%w: %d", ErrMinuteOutOfRange, minute)
	}
	year, month, day := t.Date()
	return time.Date(year, month, day, minute/60, minute%60, t.Second(), t.Nanosecond(), t.Location()), nil
}

// FormatMinute renders a minute of day the way the time slider labels it:
// "09:30" in 24-hour mode, "9:30 AM" otherwise.
func FormatMinute(minute int, is24Hour bool) string {
	hours := minute / 60
	mins := minute % 60
	if is24Hour {
		return fmt.Sprintf("%02d:%02d", hours, mins)
	}

	displayHours := hours
	switch {
	case hours == 0:
		displayHours = 12
	case hours > 12:
		displayHours = hours - 12
	}
	ampm := "AM"
	if hours >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", displayHours, mins, ampm)
}

// OffsetString formats the UTC offset of the named zone at instant,
// e.g. "UTC-4", "UTC+0", "UTC+5:30".
func OffsetString(instant time.Time, name string) (string, error) {
	local, err := LocalTime(instant, name)
	if err != nil {
		return "", err
	}
	_, offset := local.Zone()
	return FormatOffset(offset), nil
}

// FormatOffset formats an offset in seconds east of UTC.
func FormatOffset(offset int) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hours := offset / 3600
	mins := (offset % 3600) / 60
	if mins == 0 {
		return fmt.Sprintf("UTC%s%d", sign, hours)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, hours, mins)
}

// CacheStats exposes the location cache counters.
func CacheStats() map[string]int64 {
	return locations.Stats()
}
