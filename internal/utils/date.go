package utils

import (
	"errors"
	"regexp"
	"time"
)

// DateLayout is the DD-MM-YYYY format used for day keys on the wire and in storage.
const DateLayout = "02-01-2006"

var (
	ErrEmptyDate   = errors.New("empty date")
	ErrInvalidDate = errors.New("invalid date")

	dateShape = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
)

// ParseDate validates a DD-MM-YYYY day key and returns midnight of that day in loc.
// Month/day overflow (10-20-2021, 31-02-2021) is rejected.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	if !dateShape.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// IsFuture reports whether day falls on a calendar day after now, both seen in loc.
func IsFuture(day, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dy, dm, dd := day.In(loc).Date()
	return time.Date(dy, dm, dd, 0, 0, 0, 0, loc).After(today)
}
