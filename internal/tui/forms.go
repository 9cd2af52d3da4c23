package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"habitkit/internal/models"
)

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name must not be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Good (build it up)", "good"),
					huh.NewOption("Bad (break it down)", "bad"),
				).
				Value(&fm.Kind),
			huh.NewConfirm().
				Title("Due every day?").
				Value(&fm.Daily),
			huh.NewInput().
				Title("Goal streak (blank for none)").
				Value(&fm.Goal).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("goal must be a number >= 1")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Due days (mon,wed,fri)").
				Value(&fm.Days).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("pick at least one weekday")
					}
					_, err := parseFormWeekdays(s)
					return err
				}),
		).WithHideFunc(func() bool { return fm.Daily }),
	)
}

func formModelFor(h models.Habit) *HabitFormModel {
	fm := &HabitFormModel{
		Name:        h.Name,
		Description: h.Description,
		Kind:        string(h.Kind),
		Daily:       len(h.Schedule) == 7,
	}
	if !fm.Daily {
		fm.Days = h.Schedule.String()
	}
	if h.Goal != nil {
		fm.Goal = strconv.Itoa(*h.Goal)
	}
	return fm
}

// applyForm folds the submitted form back into a habit. For a new habit
// pass the zero value; identity and history fields are preserved when
// editing.
func applyForm(fm *HabitFormModel, base models.Habit, owner string) (models.Habit, error) {
	var sched models.Schedule
	var err error
	if fm.Daily {
		sched = models.Daily()
	} else {
		wds, perr := parseFormWeekdays(fm.Days)
		if perr != nil {
			return models.Habit{}, perr
		}
		sched, err = models.NewSchedule(wds...)
		if err != nil {
			return models.Habit{}, err
		}
	}

	h := base
	if h.ID == "" {
		h.ID = uuid.New().String()
		h.OwnerID = owner
		h.History = map[string]models.Outcome{}
		h.CreatedAt = time.Now().UTC()
	}
	h.Name = fm.Name
	h.Description = fm.Description
	h.Kind = models.HabitKind(fm.Kind)
	h.Schedule = sched

	h.Goal = nil
	if g := strings.TrimSpace(fm.Goal); g != "" {
		n, err := strconv.Atoi(g)
		if err != nil {
			return models.Habit{}, fmt.Errorf("invalid goal: %s", g)
		}
		h.Goal = &n
	}

	return h, nil
}

var formDayMap = map[string]models.Weekday{
	"mon": models.Monday, "tue": models.Tuesday, "wed": models.Wednesday,
	"thu": models.Thursday, "fri": models.Friday, "sat": models.Saturday,
	"sun": models.Sunday,
}

func parseFormWeekdays(s string) ([]models.Weekday, error) {
	var weekdays []models.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if len(part) > 3 {
			part = part[:3]
		}
		wd, ok := formDayMap[part]
		if !ok {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, wd)
	}
	return weekdays, nil
}
