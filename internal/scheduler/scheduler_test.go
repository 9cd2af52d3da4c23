package scheduler

import (
	"errors"
	"testing"
	"time"

	"habitkit/internal/models"
)

// 2026-01-05 is a Monday.
var (
	monday    = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tuesday   = monday.AddDate(0, 0, 1)
	wednesday = monday.AddDate(0, 0, 2)
	friday    = monday.AddDate(0, 0, 4)
)

func mwfHabit(t *testing.T) models.Habit {
	t.Helper()
	sched, err := models.NewSchedule(models.Monday, models.Wednesday, models.Friday)
	if err != nil {
		t.Fatalf("NewSchedule failed: %v", err)
	}
	return models.Habit{
		ID:        "habit-mwf",
		Name:      "Morning run",
		Kind:      models.KindGood,
		Schedule:  sched,
		History:   map[string]models.Outcome{},
		CreatedAt: monday.AddDate(0, -1, 0),
	}
}

func TestIsDue(t *testing.T) {
	h := mwfHabit(t)

	if IsDue(h, tuesday) {
		t.Error("expected Mon/Wed/Fri habit not due on Tuesday")
	}
	if !IsDue(h, wednesday) {
		t.Error("expected Mon/Wed/Fri habit due on Wednesday")
	}

	// Time of day must not matter
	lateWednesday := wednesday.Add(23*time.Hour + 59*time.Minute)
	if !IsDue(h, lateWednesday) {
		t.Error("expected due regardless of time of day")
	}
}

func TestRecordOutcome_RoundTrip(t *testing.T) {
	h := mwfHabit(t)

	done, err := RecordOutcome(h, wednesday, models.OutcomeCompleted)
	if err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}
	if got := OutcomeOn(done, wednesday); got != models.OutcomeCompleted {
		t.Errorf("expected completed, got %q", got)
	}
	if got := OutcomeOn(done, friday); got != models.OutcomeUnrecorded {
		t.Errorf("expected unrecorded for untouched due date, got %q", got)
	}

	cleared, err := RecordOutcome(done, wednesday, models.OutcomeUnrecorded)
	if err != nil {
		t.Fatalf("clearing failed: %v", err)
	}
	if got := OutcomeOn(cleared, wednesday); got != models.OutcomeUnrecorded {
		t.Errorf("expected unrecorded after clear, got %q", got)
	}
}

func TestRecordOutcome_Overwrites(t *testing.T) {
	h := mwfHabit(t)

	skipped, err := RecordOutcome(h, friday, models.OutcomeSkipped)
	if err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}
	done, err := RecordOutcome(skipped, friday, models.OutcomeCompleted)
	if err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}

	if got := OutcomeOn(done, friday); got != models.OutcomeCompleted {
		t.Errorf("expected overwrite to completed, got %q", got)
	}
	if len(done.History) != 1 {
		t.Errorf("expected a single history entry per day, got %d", len(done.History))
	}
}

func TestRecordOutcome_Idempotent(t *testing.T) {
	h := mwfHabit(t)

	once, err := RecordOutcome(h, monday, models.OutcomeCompleted)
	if err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}
	twice, err := RecordOutcome(once, monday, models.OutcomeCompleted)
	if err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}

	if len(once.History) != len(twice.History) {
		t.Fatalf("history length changed: %d vs %d", len(once.History), len(twice.History))
	}
	for day, outcome := range once.History {
		if twice.History[day] != outcome {
			t.Errorf("history diverged for %s: %q vs %q", day, outcome, twice.History[day])
		}
	}
}

func TestRecordOutcome_NotScheduled(t *testing.T) {
	h := mwfHabit(t)

	got, err := RecordOutcome(h, tuesday, models.OutcomeCompleted)
	var notSched *models.NotScheduledError
	if !errors.As(err, &notSched) {
		t.Fatalf("expected NotScheduledError, got %v", err)
	}
	if notSched.Day != "2026-01-06" {
		t.Errorf("error carries wrong day: %s", notSched.Day)
	}
	if len(got.History) != 0 || len(h.History) != 0 {
		t.Error("failed recording must leave habit unchanged")
	}
}

func TestRecordOutcome_DoesNotMutateInput(t *testing.T) {
	h := mwfHabit(t)

	if _, err := RecordOutcome(h, monday, models.OutcomeSkipped); err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}
	if len(h.History) != 0 {
		t.Error("input habit was mutated")
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2026-01-05", false},
		{"2026-1-5", true},
		{"2026-13-01", true},
		{"2026-02-30", true},
		{"yesterday", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := ParseDay(tt.in)
		if tt.wantErr {
			var dateErr *models.InvalidDateError
			if !errors.As(err, &dateErr) {
				t.Errorf("ParseDay(%q): expected InvalidDateError, got %v", tt.in, err)
			}
		} else if err != nil {
			t.Errorf("ParseDay(%q) failed: %v", tt.in, err)
		}
	}
}
