// Package legacy converts habit records written by older revisions of the
// app into the canonical model. Each historical shape gets its own adapter;
// anything ambiguous (notably a bare "weekly" frequency) is surfaced as an
// error rather than guessed.
package legacy

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"habitkit/internal/models"
	"habitkit/internal/scheduler"
)

// Shape identifies which historical revision a raw record came from.
type Shape string

const (
	// ShapeMemory is the earliest revision: numeric id, a bare
	// isCompleted flag and a string frequency. It carried no dated
	// history at all.
	ShapeMemory Shape = "memory"
	// ShapeDevice is the local-storage revision: string id and a list of
	// completed YYYY-MM-DD dates.
	ShapeDevice Shape = "device"
	// ShapeCloud is the sync revision: a date-to-bool completion map
	// (true=completed, false=skipped) plus denormalized streak counters.
	ShapeCloud Shape = "cloud"
)

type memoryRecord struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Frequency     string `json:"frequency"`
	Goal          *int   `json:"goal"`
	DaysCompleted int    `json:"daysCompleted"`
	IsCompleted   bool   `json:"isCompleted"`
}

type deviceRecord struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Type              string          `json:"type"`
	Frequency         json.RawMessage `json:"frequency"`
	CompletionHistory []string        `json:"completionHistory"`
	Goal              *int            `json:"goal"`
}

type cloudRecord struct {
	ID                string          `json:"id"`
	OwnerID           string          `json:"userId"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Type              string          `json:"type"`
	Frequency         json.RawMessage `json:"frequency"`
	CompletionHistory map[string]bool `json:"completionHistory"`
	CreatedAt         string          `json:"createdAt"`
	Goal              *int            `json:"goal"`
	// Denormalized counters from the sync revision. Recomputed from the
	// history on import, never trusted.
	Streak           int `json:"streak"`
	TotalCompletions int `json:"totalCompletions"`
	TotalSkips       int `json:"totalSkips"`
}

// DetectShape inspects a raw record and picks the adapter for it.
func DetectShape(raw json.RawMessage) (Shape, error) {
	var probe struct {
		ID                json.RawMessage `json:"id"`
		CompletionHistory json.RawMessage `json:"completionHistory"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", fmt.Errorf("unreadable record: %w", err)
	}

	if len(probe.CompletionHistory) > 0 {
		switch probe.CompletionHistory[0] {
		case '{':
			return ShapeCloud, nil
		case '[':
			return ShapeDevice, nil
		}
	}
	if len(probe.ID) > 0 && probe.ID[0] != '"' {
		return ShapeMemory, nil
	}
	if len(probe.ID) > 0 {
		return ShapeDevice, nil
	}
	return "", fmt.Errorf("record matches no known legacy shape")
}

// Decode converts a single raw legacy record into a canonical habit.
func Decode(raw json.RawMessage) (models.Habit, error) {
	shape, err := DetectShape(raw)
	if err != nil {
		return models.Habit{}, err
	}

	switch shape {
	case ShapeMemory:
		return decodeMemory(raw)
	case ShapeDevice:
		return decodeDevice(raw)
	case ShapeCloud:
		return decodeCloud(raw)
	default:
		return models.Habit{}, fmt.Errorf("unsupported shape: %s", shape)
	}
}

// DecodeAll converts a whole export (a JSON array of records). Decoding
// stops at the first bad record so a partial import never happens silently.
func DecodeAll(data []byte) ([]models.Habit, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("export is not a JSON array: %w", err)
	}

	habits := make([]models.Habit, 0, len(raws))
	for i, raw := range raws {
		h, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		habits = append(habits, h)
	}
	return habits, nil
}

func decodeMemory(raw json.RawMessage) (models.Habit, error) {
	var rec memoryRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.Habit{}, err
	}

	sched, err := models.ParseFrequency(rec.Frequency)
	if err != nil {
		return models.Habit{}, err
	}

	h := newHabit(strconv.Itoa(rec.ID), rec.Name, rec.Description, rec.Type, sched, rec.Goal)
	// The memory revision stored only an undated isCompleted flag and a
	// completion count; neither can be attributed to calendar dates, so
	// the imported habit starts with an empty history.
	return h, nil
}

func decodeDevice(raw json.RawMessage) (models.Habit, error) {
	var rec deviceRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.Habit{}, err
	}

	sched, err := parseRawFrequency(rec.Frequency)
	if err != nil {
		return models.Habit{}, err
	}

	h := newHabit(rec.ID, rec.Name, rec.Description, rec.Type, sched, rec.Goal)
	for _, day := range rec.CompletionHistory {
		if _, err := scheduler.ParseDay(day); err != nil {
			return models.Habit{}, err
		}
		h.History[day] = models.OutcomeCompleted
	}
	return h, nil
}

func decodeCloud(raw json.RawMessage) (models.Habit, error) {
	var rec cloudRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.Habit{}, err
	}

	sched, err := parseRawFrequency(rec.Frequency)
	if err != nil {
		return models.Habit{}, err
	}

	h := newHabit(rec.ID, rec.Name, rec.Description, rec.Type, sched, rec.Goal)
	h.OwnerID = rec.OwnerID
	if rec.CreatedAt != "" {
		createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
		if err != nil {
			return models.Habit{}, fmt.Errorf("bad createdAt: %w", err)
		}
		h.CreatedAt = createdAt
	}

	for day, completed := range rec.CompletionHistory {
		if _, err := scheduler.ParseDay(day); err != nil {
			return models.Habit{}, err
		}
		if completed {
			h.History[day] = models.OutcomeCompleted
		} else {
			h.History[day] = models.OutcomeSkipped
		}
	}
	return h, nil
}

// parseRawFrequency handles the two frequency encodings found in later
// revisions: a legacy string ("daily"/"weekly") or an array of weekday
// numbers in the platform's Sunday=0 convention.
func parseRawFrequency(raw json.RawMessage) (models.Schedule, error) {
	if len(raw) == 0 {
		return nil, &models.InvalidScheduleError{Reason: "missing frequency"}
	}

	if raw[0] == '"' {
		var freq string
		if err := json.Unmarshal(raw, &freq); err != nil {
			return nil, err
		}
		return models.ParseFrequency(freq)
	}

	var nativeDays []int
	if err := json.Unmarshal(raw, &nativeDays); err != nil {
		return nil, &models.InvalidScheduleError{Reason: "frequency is neither a string nor a weekday array"}
	}

	days := make([]models.Weekday, 0, len(nativeDays))
	for _, d := range nativeDays {
		if d < 0 || d > 6 {
			return nil, &models.InvalidScheduleError{Reason: "weekday out of range 0-6"}
		}
		days = append(days, models.FromTime(time.Weekday(d)))
	}
	return models.NewSchedule(days...)
}

func newHabit(id, name, description, kind string, sched models.Schedule, goal *int) models.Habit {
	if id == "" || id == "0" {
		id = uuid.New().String()
	}
	k := models.KindGood
	if kind == "bad" {
		k = models.KindBad
	}
	return models.Habit{
		ID:          id,
		Name:        name,
		Description: description,
		Kind:        k,
		Schedule:    sched,
		History:     map[string]models.Outcome{},
		Goal:        goal,
		CreatedAt:   time.Now().UTC(),
	}
}
