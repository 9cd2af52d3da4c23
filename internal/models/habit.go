package models

import "time"

// HabitKind classifies whether completing the habit is a positive or
// negative outcome. It does not affect scheduling.
type HabitKind string

const (
	KindGood HabitKind = "good"
	KindBad  HabitKind = "bad"
)

// Outcome is the recorded result for a habit on a specific day. The empty
// string means no entry exists, which is distinct from an explicit skip.
type Outcome string

const (
	OutcomeUnrecorded Outcome = ""
	OutcomeCompleted  Outcome = "completed"
	OutcomeSkipped    Outcome = "skipped"
)

// Habit represents a recurring practice to track.
type Habit struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Kind        HabitKind `json:"kind"`
	Schedule    Schedule  `json:"schedule"`
	// History maps canonical YYYY-MM-DD days to recorded outcomes. At
	// most one entry per day; entries are retained even if the schedule
	// later changes.
	History   map[string]Outcome `json:"history"`
	Goal      *int               `json:"goal,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	DeletedAt *string            `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// Clone returns a deep copy. Recording operations work on copies so the
// caller's habit value is never mutated.
func (h Habit) Clone() Habit {
	out := h
	out.Schedule = h.Schedule.Clone()
	out.History = make(map[string]Outcome, len(h.History))
	for day, outcome := range h.History {
		out.History[day] = outcome
	}
	if h.Goal != nil {
		goal := *h.Goal
		out.Goal = &goal
	}
	if h.DeletedAt != nil {
		deletedAt := *h.DeletedAt
		out.DeletedAt = &deletedAt
	}
	return out
}
