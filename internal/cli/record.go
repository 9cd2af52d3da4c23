package cli

import (
	"fmt"

	"habitkit/internal/models"
	"habitkit/internal/scheduler"
)

type DoneCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `arg:"" optional:"" default:"today" help:"Day to record (YYYY-MM-DD or 'today')."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	return record(ctx, c.Habit, c.Date, models.OutcomeCompleted, "Completed")
}

type SkipCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `arg:"" optional:"" default:"today" help:"Day to record (YYYY-MM-DD or 'today')."`
}

func (c *SkipCmd) Run(ctx *Context) error {
	return record(ctx, c.Habit, c.Date, models.OutcomeSkipped, "Skipped")
}

type ClearCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `arg:"" optional:"" default:"today" help:"Day to clear (YYYY-MM-DD or 'today')."`
}

func (c *ClearCmd) Run(ctx *Context) error {
	return record(ctx, c.Habit, c.Date, models.OutcomeUnrecorded, "Cleared")
}

func record(ctx *Context, ref, rawDate string, outcome models.Outcome, verb string) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(rawDate)
	if err != nil {
		return err
	}

	// Resolve against the full set so recording on a soft-deleted habit
	// fails with a hint instead of a lookup error.
	habit, err := findHabitIncludingDeleted(ctx, ref)
	if err != nil {
		return err
	}

	if habit.DeletedAt != nil {
		return fmt.Errorf("habit %q is deleted, restore it before recording", habit.Name)
	}

	updated, err := scheduler.RecordOutcome(habit, date, outcome)
	if err != nil {
		return err
	}

	if err := ctx.Store.UpdateHabit(updated); err != nil {
		return err
	}

	fmt.Printf("%s %q for %s.\n", verb, habit.Name, scheduler.FormatDay(date))
	return nil
}
