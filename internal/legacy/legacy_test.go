package legacy

import (
	"encoding/json"
	"errors"
	"testing"

	"habitkit/internal/models"
)

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Shape
	}{
		{"memory record", `{"id": 3, "name": "Read", "frequency": "daily", "isCompleted": false}`, ShapeMemory},
		{"device record", `{"id": "abc", "name": "Read", "frequency": [1,3], "completionHistory": ["2026-01-05"]}`, ShapeDevice},
		{"cloud record", `{"id": "abc", "name": "Read", "frequency": [1], "completionHistory": {"2026-01-05": true}}`, ShapeCloud},
		{"device without history", `{"id": "abc", "name": "Read", "frequency": "daily"}`, ShapeDevice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectShape(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("DetectShape failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecodeMemory(t *testing.T) {
	raw := `{"id": 7, "name": "Read", "description": "20 pages", "type": "good", "frequency": "daily", "goal": 30, "daysCompleted": 12, "isCompleted": true}`

	h, err := Decode(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if h.ID != "7" {
		t.Errorf("expected numeric id carried over as string, got %q", h.ID)
	}
	if len(h.Schedule) != 7 {
		t.Errorf("daily frequency should expand to 7 weekdays, got %d", len(h.Schedule))
	}
	if len(h.History) != 0 {
		t.Error("undated completion flags must not fabricate history entries")
	}
	if h.Goal == nil || *h.Goal != 30 {
		t.Error("goal not carried over")
	}
}

func TestDecodeMemory_AmbiguousWeekly(t *testing.T) {
	raw := `{"id": 7, "name": "Gym", "frequency": "weekly"}`

	_, err := Decode(json.RawMessage(raw))
	var schedErr *models.InvalidScheduleError
	if !errors.As(err, &schedErr) {
		t.Fatalf("expected InvalidScheduleError for bare weekly frequency, got %v", err)
	}
}

func TestDecodeDevice(t *testing.T) {
	// Weekday numbers are in the platform's Sunday=0 convention:
	// 1=Monday, 3=Wednesday, 5=Friday.
	raw := `{"id": "h-1", "name": "Run", "type": "good", "frequency": [1, 3, 5], "completionHistory": ["2026-01-05", "2026-01-07"]}`

	h, err := Decode(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	for _, d := range []models.Weekday{models.Monday, models.Wednesday, models.Friday} {
		if !h.Schedule.Contains(d) {
			t.Errorf("schedule missing %s after Sunday=0 conversion", d)
		}
	}
	if h.Schedule.Contains(models.Saturday) {
		t.Error("schedule contains Saturday, conversion is off by one")
	}
	if h.History["2026-01-05"] != models.OutcomeCompleted {
		t.Error("date-list history entry not imported as completed")
	}
}

func TestDecodeDevice_BadDate(t *testing.T) {
	raw := `{"id": "h-1", "name": "Run", "frequency": [1], "completionHistory": ["01/05/2026"]}`

	_, err := Decode(json.RawMessage(raw))
	var dateErr *models.InvalidDateError
	if !errors.As(err, &dateErr) {
		t.Fatalf("expected InvalidDateError, got %v", err)
	}
}

func TestDecodeCloud(t *testing.T) {
	raw := `{
		"id": "h-2", "userId": "u-9", "name": "Meditate", "type": "good",
		"frequency": [0, 1], "createdAt": "2025-06-01T08:00:00Z",
		"completionHistory": {"2026-01-04": true, "2026-01-05": false},
		"streak": 999, "totalCompletions": 999, "totalSkips": 999
	}`

	h, err := Decode(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if h.OwnerID != "u-9" {
		t.Errorf("owner id not carried over, got %q", h.OwnerID)
	}
	if h.History["2026-01-04"] != models.OutcomeCompleted {
		t.Error("true entry should import as completed")
	}
	if h.History["2026-01-05"] != models.OutcomeSkipped {
		t.Error("false entry should import as skipped")
	}
	// Sunday=0 and Monday=1 native convert to canonical Sunday and Monday.
	if !h.Schedule.Contains(models.Sunday) || !h.Schedule.Contains(models.Monday) {
		t.Errorf("schedule conversion wrong: %v", h.Schedule)
	}
	if h.CreatedAt.Year() != 2025 {
		t.Errorf("createdAt not parsed: %v", h.CreatedAt)
	}
}

func TestDecodeAll_StopsAtFirstBadRecord(t *testing.T) {
	data := []byte(`[
		{"id": 1, "name": "A", "frequency": "daily"},
		{"id": 2, "name": "B", "frequency": "weekly"}
	]`)

	_, err := DecodeAll(data)
	if err == nil {
		t.Fatal("expected error for ambiguous record in export")
	}
}

func TestDecodeAll(t *testing.T) {
	data := []byte(`[
		{"id": 1, "name": "A", "frequency": "daily"},
		{"id": "b", "name": "B", "frequency": [2], "completionHistory": ["2026-01-06"]}
	]`)

	habits, err := DecodeAll(data)
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(habits))
	}
	if habits[0].Name != "A" || habits[1].Name != "B" {
		t.Error("records decoded out of order")
	}
}
