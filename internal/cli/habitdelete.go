package cli

import (
	"fmt"
	"strings"
)

type DeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := findHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit %q. Restore it with 'habitkit restore %s'.\n", habit.Name, habit.ID)
	return nil
}

type RestoreCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *RestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// findHabit skips deleted habits, so resolve against the full set.
	habit, err := findHabitIncludingDeleted(ctx, c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
		return err
	}

	fmt.Println("Habit restored.")
	return nil
}

type PurgeCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *PurgeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := findHabitIncludingDeleted(ctx, c.Habit)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("Permanently delete %q and all of its history? [y/N] ", habit.Name)
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Store.PurgeHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Purged habit %q.\n", habit.Name)
	return nil
}
