package timezone

import (
	"fmt"
	"time"
)

const hoursPerDay = 24

// DateOnly returns the calendar date of t, as seen in t's own location, as UTC midnight.
// Two values can be compared with Equal/Before regardless of the locations they came from.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q, expected YYYY-MM-DD: %w", value, err)
	}

	return date, nil
}

// FormatDate formats a calendar date without shifting it into the application timezone.
func FormatDate(t time.Time) string {
	return DateOnly(t).Format(time.DateOnly)
}

// FormatDatePtr is FormatDate for optional dates.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := FormatDate(*t)

	return &formatted
}

// ParseAsOf accepts an RFC3339 instant or a calendar date. An empty value means now.
// A bare date is interpreted as midnight in the application timezone.
func ParseAsOf(value string) (time.Time, error) {
	if value == "" {
		return Now(), nil
	}

	if instant, err := time.Parse(time.RFC3339, value); err == nil {
		return ToAppTime(instant), nil
	}

	date, err := time.ParseInLocation(time.DateOnly, value, GetLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of %q, expected RFC3339 or YYYY-MM-DD: %w", value, err)
	}

	return date, nil
}

// Midnight returns the start of date's calendar day in loc.
func Midnight(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween counts whole calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours() / hoursPerDay)
}
