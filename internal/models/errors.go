package models

import "fmt"

// InvalidScheduleError is returned when a schedule is empty, contains
// out-of-range weekdays, or comes from an ambiguous legacy frequency value.
type InvalidScheduleError struct {
	Reason string
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid schedule: %s", e.Reason)
}

// NotScheduledError is returned when an outcome is recorded for a date the
// habit is not due on.
type NotScheduledError struct {
	HabitID string
	Day     string
}

func (e *NotScheduledError) Error() string {
	return fmt.Sprintf("habit %s is not scheduled on %s", e.HabitID, e.Day)
}

// InvalidDateError is returned for unparseable or out-of-range calendar
// dates.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q (want YYYY-MM-DD)", e.Value)
}
