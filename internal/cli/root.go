package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"habitkit/internal/models"
	"habitkit/internal/scheduler"
	"habitkit/internal/storage"
)

type Context struct {
	Store storage.Provider
	// Owner scopes every habit operation. Empty for local-only use.
	Owner string
	Debug bool
}

var dayMap = map[string]models.Weekday{
	"mon": models.Monday, "monday": models.Monday,
	"tue": models.Tuesday, "tuesday": models.Tuesday,
	"wed": models.Wednesday, "wednesday": models.Wednesday,
	"thu": models.Thursday, "thursday": models.Thursday,
	"fri": models.Friday, "friday": models.Friday,
	"sat": models.Saturday, "saturday": models.Saturday,
	"sun": models.Sunday, "sunday": models.Sunday,
}

// parseWeekdays reads a comma-separated list of weekday names, or numbers
// in the canonical Monday=0 convention.
func parseWeekdays(s string) ([]models.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []models.Weekday

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s (use names or 0=Monday..6=Sunday)", part)
		}
		weekdays = append(weekdays, models.Weekday(num))
	}

	return weekdays, nil
}

// buildSchedule turns the add/edit flag pair into a schedule. Exactly one
// of frequency and days must be given.
func buildSchedule(frequency, days string) (models.Schedule, error) {
	switch {
	case frequency != "" && days != "":
		return nil, fmt.Errorf("use either --frequency or --days, not both")
	case frequency != "":
		return models.ParseFrequency(frequency)
	case days != "":
		wds, err := parseWeekdays(days)
		if err != nil {
			return nil, err
		}
		return models.NewSchedule(wds...)
	default:
		return nil, fmt.Errorf("a schedule is required: pass --frequency daily or --days mon,wed,...")
	}
}

// resolveDate parses a CLI date argument, accepting "today".
func resolveDate(arg string) (time.Time, error) {
	if arg == "" || arg == "today" {
		return scheduler.DayOf(time.Now()), nil
	}
	return scheduler.ParseDay(arg)
}

// findHabit resolves a habit reference, matching by id first, then by
// unique name.
func findHabit(ctx *Context, ref string) (models.Habit, error) {
	if h, err := ctx.Store.GetHabit(ref); err == nil {
		return h, nil
	}

	habits, err := ctx.Store.GetAllHabits(ctx.Owner, false)
	if err != nil {
		return models.Habit{}, err
	}

	var matches []models.Habit
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("no habit matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("%d habits named %q, use the id", len(matches), ref)
	}
}

// findHabitIncludingDeleted resolves a habit reference against the full
// set, soft-deleted habits included.
func findHabitIncludingDeleted(ctx *Context, ref string) (models.Habit, error) {
	habits, err := ctx.Store.GetAllHabits(ctx.Owner, true)
	if err != nil {
		return models.Habit{}, err
	}

	var matches []models.Habit
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
		if strings.EqualFold(h.Name, ref) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("no habit matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("%d habits named %q, use the id", len(matches), ref)
	}
}

func outcomeMarker(o models.Outcome) string {
	switch o {
	case models.OutcomeCompleted:
		return "[x]"
	case models.OutcomeSkipped:
		return "[-]"
	default:
		return "[ ]"
	}
}
