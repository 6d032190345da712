package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// NormalizeToNoon returns the calendar day of t (in t's own location) at 12:00 UTC.
// Differencing two noon-normalized values never crosses a DST or timezone boundary by accident.
func NormalizeToNoon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// SignedDaysDiff returns the number of whole days from d1 to d2. It is negative when d2 is before d1.
// Days are counted on Unix seconds rather than time.Duration, which overflows past about 292 years.
func SignedDaysDiff(d1, d2 time.Time) int {
	diff := NormalizeToNoon(d2).Unix() - NormalizeToNoon(d1).Unix()
	return int(diff / secondsPerDay)
}

// DaysDiff returns the absolute number of days between d1 and d2.
func DaysDiff(d1, d2 time.Time) int {
	diff := SignedDaysDiff(d1, d2)
	if diff < 0 {
		return -diff
	}
	return diff
}

// DaysDiffInclusive counts both endpoints, so a task starting and ending on the same day lasts 1 day.
func DaysDiffInclusive(d1, d2 time.Time) int {
	return DaysDiff(d1, d2) + 1
}

// AddDays returns the noon-normalized date n days after t.
func AddDays(t time.Time, n int) time.Time {
	return NormalizeToNoon(t).AddDate(0, 0, n)
}

// ParseDate accepts YYYY-MM-DD or a full RFC3339 timestamp and returns the noon-normalized calendar date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return NormalizeToNoon(t), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return NormalizeToNoon(t), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
