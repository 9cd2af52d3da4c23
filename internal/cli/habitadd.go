package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"habitkit/internal/models"
	"habitkit/internal/scheduler"
)

type AddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Description string `short:"D" help:"Optional description."`
	Kind        string `short:"k" help:"Habit kind (good|bad)." default:"good" enum:"good,bad"`
	Frequency   string `short:"f" help:"Legacy frequency shortcut (daily)."`
	Days        string `short:"d" help:"Comma-separated weekdays the habit is due on (mon,wed,fri or 0,2,4)."`
	Goal        int    `short:"g" help:"Optional target number of completions."`
	Interactive bool   `short:"i" help:"Fill in the habit with an interactive form."`
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Interactive {
		if err := c.runForm(); err != nil {
			return err
		}
	}

	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("habit name must not be empty")
	}

	sched, err := buildSchedule(c.Frequency, c.Days)
	if err != nil {
		return err
	}

	if c.Goal < 0 {
		return fmt.Errorf("goal must be >= 1")
	}
	var goal *int
	if c.Goal > 0 {
		goal = &c.Goal
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		OwnerID:     ctx.Owner,
		Name:        c.Name,
		Description: c.Description,
		Kind:        models.HabitKind(c.Kind),
		Schedule:    sched,
		History:     map[string]models.Outcome{},
		Goal:        goal,
		CreatedAt:   time.Now().UTC(),
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s, due %s) (ID: %s)\n", habit.Name, habit.Kind, habit.Schedule, habit.ID)
	if scheduler.IsDue(habit, time.Now()) {
		fmt.Println("Due today.")
	}
	return nil
}

func (c *AddCmd) runForm() error {
	daily := c.Frequency == "daily"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&c.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name must not be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&c.Description),
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Good (build it up)", "good"),
					huh.NewOption("Bad (break it down)", "bad"),
				).
				Value(&c.Kind),
			huh.NewConfirm().
				Title("Due every day?").
				Value(&daily),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Due days (mon,wed,fri)").
				Value(&c.Days).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("pick at least one weekday")
					}
					_, err := parseWeekdays(s)
					return err
				}),
		).WithHideFunc(func() bool { return daily }),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if daily {
		c.Frequency = "daily"
		c.Days = ""
	} else {
		c.Frequency = ""
	}
	return nil
}
