// Package scheduler holds the pure habit scheduling and completion model:
// which habits are due on a given date, how outcomes are recorded against a
// completion history, and the statistics derived from that history. Nothing
// here touches storage; state-changing operations return a new Habit value
// and leave the input untouched, so the caller owns replacing its stored
// copy.
package scheduler

import (
	"fmt"
	"time"

	"habitkit/internal/models"
)

// IsDue reports whether the habit is due on the given date, i.e. whether
// the date's weekday is in the habit's schedule.
func IsDue(h models.Habit, date time.Time) bool {
	return h.Schedule.Contains(WeekdayOf(date))
}

// RecordOutcome returns a copy of h with the history entry for date set to
// outcome. OutcomeCompleted and OutcomeSkipped overwrite the single entry
// for the day; OutcomeUnrecorded clears it (undo). Recording against a
// date the habit is not due on fails with NotScheduledError and leaves h
// unchanged. The operation is idempotent.
func RecordOutcome(h models.Habit, date time.Time, outcome models.Outcome) (models.Habit, error) {
	if !IsDue(h, date) {
		return h, &models.NotScheduledError{HabitID: h.ID, Day: FormatDay(date)}
	}

	out := h.Clone()
	day := FormatDay(date)
	switch outcome {
	case models.OutcomeCompleted, models.OutcomeSkipped:
		out.History[day] = outcome
	case models.OutcomeUnrecorded:
		delete(out.History, day)
	default:
		return h, fmt.Errorf("unknown outcome: %q", outcome)
	}
	return out, nil
}

// OutcomeOn returns the recorded outcome for the given date.
// OutcomeUnrecorded is the default for any date without a history entry,
// including dates outside the habit's schedule.
func OutcomeOn(h models.Habit, date time.Time) models.Outcome {
	return h.History[FormatDay(date)]
}
