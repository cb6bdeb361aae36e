package model

import (
	"fmt"
	"strings"
	"time"
)

// ValidDays are the accepted weekday names for schedules.
var ValidDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday",
	"Friday", "Saturday", "Sunday",
}

// Schedule is a single weekday + start/end time slot belonging to a
// Class. Times are stored as the 12-hour strings the client supplied
// (e.g. "07:00 AM"); validation and conflict checks parse them.
type Schedule struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ClockTime is a wall-clock time expressed as minutes since midnight.
type ClockTime int

const clockLayout = "3:04 PM"

// ParseClockTime parses a 12-hour clock string ("h:mm AM/PM"). It is
// tolerant of a single-digit hour, lowercase meridiem markers, and a
// missing space before AM/PM ("9:00AM").
func ParseClockTime(s string) (ClockTime, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(s))

	// Insert the missing space before a trailing AM/PM.
	if n := len(cleaned); n >= 3 {
		if suffix := cleaned[n-2:]; (suffix == "AM" || suffix == "PM") && cleaned[n-3] != ' ' {
			cleaned = cleaned[:n-2] + " " + cleaned[n-2:]
		}
	}

	t, err := time.Parse(clockLayout, cleaned)
	if err != nil {
		return 0, fmt.Errorf("time %q must be in format 'HH:MM AM' or 'HH:MM PM'", s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// Overlaps reports whether two same-day time ranges collide. Ranges
// are half-open: back-to-back slots sharing an endpoint do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd ClockTime) bool {
	return aStart < bEnd && aEnd > bStart
}

// IsValidDay reports whether day is one of the seven weekday names.
func IsValidDay(day string) bool {
	return Contains(ValidDays, day)
}

// Contains reports whether values includes v.
func Contains(values []string, v string) bool {
	for _, c := range values {
		if c == v {
			return true
		}
	}
	return false
}
