package scheduler

import (
	"testing"
	"time"

	"habitkit/internal/models"
)

func TestStatsOf_Empty(t *testing.T) {
	h := mwfHabit(t)

	s := StatsOf(h, wednesday)
	if s.CurrentStreak != 0 || s.TotalCompletions != 0 || s.TotalSkips != 0 {
		t.Errorf("expected zeroed stats, got %+v", s)
	}
	if s.CompletionRate != 0 {
		t.Errorf("completion rate must be 0 with no outcomes, got %f", s.CompletionRate)
	}
}

func TestStatsOf_StreakBrokenBySkip(t *testing.T) {
	sched, err := models.NewSchedule(models.Monday, models.Tuesday, models.Wednesday)
	if err != nil {
		t.Fatalf("NewSchedule failed: %v", err)
	}
	h := models.Habit{
		ID:        "habit-mtw",
		Name:      "Journal",
		Schedule:  sched,
		CreatedAt: monday.AddDate(0, 0, -21),
		History: map[string]models.Outcome{
			FormatDay(monday):    models.OutcomeCompleted,
			FormatDay(tuesday):   models.OutcomeCompleted,
			FormatDay(wednesday): models.OutcomeSkipped,
		},
	}

	if got := StatsOf(h, wednesday).CurrentStreak; got != 0 {
		t.Errorf("streak as of skipped Wednesday = %d, want 0", got)
	}
	if got := StatsOf(h, tuesday).CurrentStreak; got != 2 {
		t.Errorf("streak as of Tuesday = %d, want 2", got)
	}
}

func TestStatsOf_NonDueDaysDoNotBreakStreak(t *testing.T) {
	h := mwfHabit(t)
	h.History = map[string]models.Outcome{
		FormatDay(monday):    models.OutcomeCompleted,
		FormatDay(wednesday): models.OutcomeCompleted,
		FormatDay(friday):    models.OutcomeCompleted,
	}

	// Saturday and Sunday are not due; the walk from Sunday must reach
	// back through Fri/Wed/Mon without interruption.
	sunday := friday.AddDate(0, 0, 2)
	if got := StatsOf(h, sunday).CurrentStreak; got != 3 {
		t.Errorf("streak across non-due weekend = %d, want 3", got)
	}
}

func TestStatsOf_StreakStopsAtCreation(t *testing.T) {
	h := mwfHabit(t)
	h.CreatedAt = wednesday
	h.History = map[string]models.Outcome{
		FormatDay(wednesday): models.OutcomeCompleted,
		FormatDay(friday):    models.OutcomeCompleted,
	}

	// Monday predates the habit; the walk must not count or require it.
	if got := StatsOf(h, friday).CurrentStreak; got != 2 {
		t.Errorf("streak bounded by creation = %d, want 2", got)
	}
}

func TestStatsOf_TotalsAndRate(t *testing.T) {
	h := mwfHabit(t)
	h.History = map[string]models.Outcome{
		FormatDay(monday):    models.OutcomeCompleted,
		FormatDay(wednesday): models.OutcomeSkipped,
		FormatDay(friday):    models.OutcomeCompleted,
		"2025-12-29":         models.OutcomeSkipped, // prior Monday
	}

	s := StatsOf(h, friday)
	if s.TotalCompletions != 2 {
		t.Errorf("total completions = %d, want 2", s.TotalCompletions)
	}
	if s.TotalSkips != 2 {
		t.Errorf("total skips = %d, want 2", s.TotalSkips)
	}
	if s.CompletionRate != 0.5 {
		t.Errorf("completion rate = %f, want 0.5", s.CompletionRate)
	}
	if s.CompletionRate < 0 || s.CompletionRate > 1 {
		t.Errorf("completion rate out of [0,1]: %f", s.CompletionRate)
	}
}

func TestStatsOf_IgnoresTimeOfDay(t *testing.T) {
	h := mwfHabit(t)
	h.History = map[string]models.Outcome{FormatDay(monday): models.OutcomeCompleted}

	asOf := monday.Add(18 * time.Hour)
	if got := StatsOf(h, asOf).CurrentStreak; got != 1 {
		t.Errorf("streak with time-of-day on asOf = %d, want 1", got)
	}
}
