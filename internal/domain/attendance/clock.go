package attendance

import (
	"fmt"
	"time"
)

// Arrivals after ThresholdHour:00:00 local time are late.
const ThresholdHour = 8

// DateOf returns the calendar date of t in loc, as UTC midnight.
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Threshold returns 08:00:00 in loc on the calendar day of date.
func Threshold(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, ThresholdHour, 0, 0, 0, loc)
}

// FormatDuration renders d as "{h}h{m}m" from its whole seconds, floored to
// minutes. Negative durations render as "0h0m".
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%dh%dm", secs/3600, (secs%3600)/60)
}

// EvaluateArrival classifies an arrival on date against the threshold.
func EvaluateArrival(date time.Time, arrival time.Time, loc *time.Location) (Status, string) {
	threshold := Threshold(date, loc)
	if !arrival.After(threshold) {
		return StatusPresent, NoValue
	}
	return StatusLate, FormatDuration(arrival.Sub(threshold))
}

// WorkedHours formats the time between arrival and departure.
func WorkedHours(arrival, departure time.Time) (string, error) {
	if departure.Before(arrival) {
		return "", ErrDepartureBeforeArrival
	}
	return FormatDuration(departure.Sub(arrival)), nil
}

// ParseClockTime accepts an RFC 3339 timestamp or a "15:04"/"15:04:05" wall
// clock reading on date in loc.
func ParseClockTime(date time.Time, value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, d := date.Date()
			return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid clock time %q", value)
}
