// Package timeformat renders stored clock strings for display.
package timeformat

import (
	"fmt"
	"strconv"
	"strings"
)

// To12Hour converts a stored clock value ("14:30:00", "09:05", "00:15") to
// 12-hour display form ("2:30 PM", "9:05 AM", "12:15 AM"). Values that
// already carry an AM/PM marker, and values that do not parse, pass through
// unchanged.
func To12Hour(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	upper := strings.ToUpper(s)
	if strings.Contains(upper, "AM") || strings.Contains(upper, "PM") {
		return s
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return s
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return s
	}
	minute := parts[1]
	if len(minute) != 2 {
		return s
	}
	if _, err := strconv.Atoi(minute); err != nil {
		return s
	}

	suffix := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		hour -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%s %s", hour, minute, suffix)
}

// Range renders "start to end" when both are set, or whichever one is.
func Range(start, end string) string {
	s, e := To12Hour(start), To12Hour(end)
	switch {
	case s != "" && e != "":
		return s + " to " + e
	case s != "":
		return s
	default:
		return e
	}
}
