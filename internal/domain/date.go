package domain

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("execution date must be YYYY-MM-DD")

// ParseExecutionDate parses a YYYY-MM-DD date as UTC midnight.
func ParseExecutionDate(raw string) (time.Time, error) {
	if len(raw) != len(dateLayout) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if t.Year() < 1000 || t.Year() > 9999 {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// UTCDate truncates t to midnight of its UTC calendar day.
func UTCDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
