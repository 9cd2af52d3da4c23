package tui

import (
	"testing"
	"time"

	"habitkit/internal/models"
)

func TestApplyFormNewHabit(t *testing.T) {
	fm := &HabitFormModel{
		Name:  "Journal",
		Kind:  "good",
		Days:  "mon, wednesday, fri",
		Goal:  "10",
		Daily: false,
	}

	h, err := applyForm(fm, models.Habit{}, "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.ID == "" {
		t.Error("new habit has no id")
	}
	if h.OwnerID != "owner-1" {
		t.Errorf("got owner %q, want owner-1", h.OwnerID)
	}
	if len(h.Schedule) != 3 {
		t.Errorf("got %d schedule days, want 3", len(h.Schedule))
	}
	if h.Goal == nil || *h.Goal != 10 {
		t.Errorf("goal not applied: %v", h.Goal)
	}
	if h.History == nil {
		t.Error("history map not initialized")
	}
}

func TestApplyFormEditKeepsIdentity(t *testing.T) {
	base := models.Habit{
		ID:        "h-1",
		OwnerID:   "owner-1",
		Name:      "Old Name",
		Kind:      models.KindGood,
		Schedule:  models.Daily(),
		History:   map[string]models.Outcome{"2026-01-05": models.OutcomeCompleted},
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	fm := formModelFor(base)
	fm.Name = "New Name"
	fm.Goal = ""

	h, err := applyForm(fm, base, "owner-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.ID != "h-1" || h.OwnerID != "owner-1" {
		t.Errorf("identity changed: id=%q owner=%q", h.ID, h.OwnerID)
	}
	if h.Name != "New Name" {
		t.Errorf("got name %q, want New Name", h.Name)
	}
	if h.History["2026-01-05"] != models.OutcomeCompleted {
		t.Error("history lost on edit")
	}
	if !h.CreatedAt.Equal(base.CreatedAt) {
		t.Error("creation time changed on edit")
	}
}

func TestParseFormWeekdays(t *testing.T) {
	wds, err := parseFormWeekdays("saturday,sun")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wds) != 2 || wds[0] != models.Saturday || wds[1] != models.Sunday {
		t.Errorf("unexpected weekdays: %v", wds)
	}

	if _, err := parseFormWeekdays("someday"); err == nil {
		t.Error("expected error for invalid weekday")
	}
}
