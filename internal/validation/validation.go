package validation

import (
	"fmt"
	"sort"

	"habitkit/internal/models"
	"habitkit/internal/scheduler"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidSchedule  ConflictType = "invalid_schedule"
	ConflictDuplicateName    ConflictType = "duplicate_habit_name"
	ConflictMalformedDate    ConflictType = "malformed_date"
	ConflictOffScheduleEntry ConflictType = "off_schedule_entry"
	ConflictInvalidGoal      ConflictType = "invalid_goal"
	ConflictMissingName      ConflictType = "missing_name"
	ConflictUnknownOutcome   ConflictType = "unknown_outcome"
)

// Conflict represents a detected problem in the habit collection
type Conflict struct {
	Type        ConflictType
	Description string
	HabitIDs    []string
	Day         string // YYYY-MM-DD (if applicable)
	// Warning conflicts are reported but do not fail validation. History
	// entries whose weekday left the schedule are the main case: history
	// is append-only across schedule edits, so they are expected.
	Warning bool
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasErrors returns true if any non-warning conflict was found
func (r *Result) HasErrors() bool {
	for _, c := range r.Conflicts {
		if !c.Warning {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if len(r.Conflicts) == 0 {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range r.Conflicts {
		marker := "-"
		if conflict.Warning {
			marker = "~"
		}
		report += fmt.Sprintf("%s %s\n", marker, conflict.Description)
	}
	return report
}

// ValidateHabits checks a habit collection for structural problems.
func ValidateHabits(habits []models.Habit) Result {
	result := Result{Conflicts: []Conflict{}}

	// Duplicate names across live habits
	nameCount := make(map[string][]string)
	for _, h := range habits {
		if h.DeletedAt != nil || h.Name == "" {
			continue
		}
		nameCount[h.Name] = append(nameCount[h.Name], h.ID)
	}
	names := make([]string, 0, len(nameCount))
	for name := range nameCount {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ids := nameCount[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", name, ids),
				HabitIDs:    ids,
			})
		}
	}

	for _, h := range habits {
		if h.DeletedAt != nil {
			continue
		}
		result.Conflicts = append(result.Conflicts, validateHabit(h)...)
	}

	return result
}

func validateHabit(h models.Habit) []Conflict {
	var conflicts []Conflict

	if h.Name == "" {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictMissingName,
			Description: fmt.Sprintf("Habit %s has no name", h.ID),
			HabitIDs:    []string{h.ID},
		})
	}

	// Re-validating through the constructor catches empty and
	// out-of-range schedules that bypassed it (hand-edited files,
	// partial imports).
	if _, err := models.NewSchedule(h.Schedule...); err != nil {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictInvalidSchedule,
			Description: fmt.Sprintf("Habit %q has an invalid schedule: %v", h.Name, err),
			HabitIDs:    []string{h.ID},
		})
		return conflicts // weekday checks below need a usable schedule
	}

	if h.Goal != nil && *h.Goal < 1 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictInvalidGoal,
			Description: fmt.Sprintf("Habit %q has goal %d, want >= 1", h.Name, *h.Goal),
			HabitIDs:    []string{h.ID},
		})
	}

	days := make([]string, 0, len(h.History))
	for day := range h.History {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		outcome := h.History[day]
		date, err := scheduler.ParseDay(day)
		if err != nil {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictMalformedDate,
				Description: fmt.Sprintf("Habit %q has a malformed history key: %q", h.Name, day),
				HabitIDs:    []string{h.ID},
				Day:         day,
			})
			continue
		}

		if outcome != models.OutcomeCompleted && outcome != models.OutcomeSkipped {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictUnknownOutcome,
				Description: fmt.Sprintf("Habit %q has an unknown outcome %q on %s", h.Name, outcome, day),
				HabitIDs:    []string{h.ID},
				Day:         day,
			})
		}

		if !scheduler.IsDue(h, date) {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictOffScheduleEntry,
				Description: fmt.Sprintf("Habit %q has a history entry on %s (%s), which is no longer in its schedule", h.Name, day, scheduler.WeekdayOf(date)),
				HabitIDs:    []string{h.ID},
				Day:         day,
				Warning:     true,
			})
		}
	}

	return conflicts
}
