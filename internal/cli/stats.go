package cli

import (
	"fmt"
	"time"

	"habitkit/internal/scheduler"
)

type StatsCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := findHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	stats := scheduler.StatsOf(habit, time.Now())

	fmt.Printf("%s (%s)\n", habit.Name, habit.Schedule)
	if habit.Description != "" {
		fmt.Printf("  %s\n", habit.Description)
	}
	fmt.Printf("  Current streak:    %d\n", stats.CurrentStreak)
	fmt.Printf("  Total completions: %d\n", stats.TotalCompletions)
	fmt.Printf("  Total skips:       %d\n", stats.TotalSkips)
	fmt.Printf("  Completion rate:   %.0f%%\n", stats.CompletionRate*100)
	if habit.Goal != nil {
		fmt.Printf("  Goal:              %d day streak", *habit.Goal)
		if stats.CurrentStreak >= *habit.Goal {
			fmt.Print("  (reached!)")
		}
		fmt.Println()
	}

	return nil
}
