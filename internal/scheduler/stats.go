package scheduler

import (
	"time"

	"habitkit/internal/models"
)

// Stats are derived from a habit's completion history. They are recomputed
// on demand and never stored.
type Stats struct {
	CurrentStreak    int
	TotalCompletions int
	TotalSkips       int
	// CompletionRate is completions / (completions + skips), in [0, 1].
	// Zero when no outcomes are recorded yet.
	CompletionRate float64
}

// StatsOf derives streak and totals from the habit's history as of the
// given date. The streak counts consecutive due dates completed, walking
// backward from asOf; non-due days are skipped over without breaking it,
// and the first due day that is not completed ends the walk. The walk
// never goes past the habit's creation date.
func StatsOf(h models.Habit, asOf time.Time) Stats {
	var s Stats
	for _, outcome := range h.History {
		switch outcome {
		case models.OutcomeCompleted:
			s.TotalCompletions++
		case models.OutcomeSkipped:
			s.TotalSkips++
		}
	}

	if total := s.TotalCompletions + s.TotalSkips; total > 0 {
		s.CompletionRate = float64(s.TotalCompletions) / float64(total)
	}

	floor := DayOf(h.CreatedAt)
	for day := DayOf(asOf); !day.Before(floor); day = day.AddDate(0, 0, -1) {
		if !IsDue(h, day) {
			continue
		}
		if h.History[FormatDay(day)] != models.OutcomeCompleted {
			break
		}
		s.CurrentStreak++
	}

	return s
}
