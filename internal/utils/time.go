package utils

import (
	"strings"
	"time"
)

const (
	layoutDate      = "2006-01-02"
	layoutTimestamp = "2006-01-02T15:04:05.000Z07:00"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD as midnight UTC. Full RFC3339 timestamps are accepted too.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(layoutDate, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// FormatDate formats time to YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(layoutDate)
}

// FormatTimestamp formats time as an ISO-8601 UTC timestamp with milliseconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(layoutTimestamp)
}

const secondsPerDay = 24 * 60 * 60

// NightCount returns the whole days between check-in and check-out, rounded up.
// The result is never below 1: same-day, inverted or unparseable ranges bill one night.
func NightCount(checkIn, checkOut string) int {
	start, err := ParseDate(checkIn)
	if err != nil {
		return 1
	}
	end, err := ParseDate(checkOut)
	if err != nil {
		return 1
	}
	secs := end.Unix() - start.Unix()
	if secs <= 0 {
		return 1
	}
	return int((secs + secondsPerDay - 1) / secondsPerDay)
}
