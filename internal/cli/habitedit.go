package cli

import (
	"fmt"
	"strings"

	"habitkit/internal/models"
)

type EditCmd struct {
	Habit       string `arg:"" help:"Habit id or name."`
	Name        string `short:"n" help:"New name."`
	Description string `short:"D" help:"New description."`
	Kind        string `short:"k" help:"New kind (good|bad)." enum:"good,bad,"`
	Frequency   string `short:"f" help:"New frequency (daily)."`
	Days        string `short:"d" help:"New comma-separated due days."`
	Goal        int    `short:"g" help:"New completion goal (0 clears it)."`
	ClearGoal   bool   `help:"Remove the goal."`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := findHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	changed := false

	if c.Name != "" {
		habit.Name = c.Name
		changed = true
	}
	if c.Description != "" {
		habit.Description = c.Description
		changed = true
	}
	if c.Kind != "" {
		habit.Kind = models.HabitKind(c.Kind)
		changed = true
	}
	if c.Frequency != "" || c.Days != "" {
		// History entries stay untouched on schedule changes, so days
		// recorded under the old schedule remain counted.
		sched, err := buildSchedule(c.Frequency, c.Days)
		if err != nil {
			return err
		}
		habit.Schedule = sched
		changed = true
	}
	switch {
	case c.ClearGoal:
		habit.Goal = nil
		changed = true
	case c.Goal < 0:
		return fmt.Errorf("goal must be >= 1")
	case c.Goal > 0:
		goal := c.Goal
		habit.Goal = &goal
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change, pass at least one of --name, --description, --kind, --frequency, --days, --goal")
	}

	if strings.TrimSpace(habit.Name) == "" {
		return fmt.Errorf("habit name must not be empty")
	}

	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s (%s, due %s)\n", habit.Name, habit.Kind, habit.Schedule)
	return nil
}
