package scheduler

import (
	"time"

	"habitkit/internal/constants"
	"habitkit/internal/models"
)

// FormatDay renders t as a canonical YYYY-MM-DD history key. Time of day
// and zone are dropped.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a canonical YYYY-MM-DD string into a calendar date at
// midnight UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, &models.InvalidDateError{Value: s}
	}
	// time.Parse accepts out-of-range components in some layouts by
	// normalizing them; reject anything that does not round-trip.
	if t.Format(constants.DateFormat) != s {
		return time.Time{}, &models.InvalidDateError{Value: s}
	}
	return t, nil
}

// DayOf strips the time components of t, keeping only its calendar date.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekdayOf returns the canonical Monday=0 weekday of t.
func WeekdayOf(t time.Time) models.Weekday {
	return models.FromTime(t.Weekday())
}
