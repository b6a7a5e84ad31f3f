package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// ClockLayout is the HH:MM:SS layout used for the last-update line.
const ClockLayout = "15:04:05"

const displayZone = "Europe/Berlin"

var germanWeekdays = [...]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."}

// DisplayLocation returns the zone cards are rendered in, or UTC when tzdata is missing.
func DisplayLocation() *time.Location {
	if loc, err := time.LoadLocation(displayZone); err == nil {
		return loc
	}
	return time.UTC
}

// FormatKickoff renders t like "SA., 18.10., 15:30" in loc.
func FormatKickoff(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "TBA"
	}
	if loc != nil {
		t = t.In(loc)
	}
	s := fmt.Sprintf("%s, %02d.%02d., %02d:%02d",
		germanWeekdays[t.Weekday()], t.Day(), int(t.Month()), t.Hour(), t.Minute())
	return strings.ToUpper(s)
}

// FormatClock renders t as HH:MM:SS in loc.
func FormatClock(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(ClockLayout)
}
