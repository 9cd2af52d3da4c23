package cli

import (
	"fmt"
	"sort"
	"time"

	"habitkit/internal/scheduler"
)

type ListCmd struct {
	All bool `short:"a" help:"Include soft-deleted habits."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(ctx.Owner, c.All)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'habitkit add'.")
		return nil
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].Name < habits[j].Name
	})

	now := time.Now()
	for _, h := range habits {
		status := ""
		if h.DeletedAt != nil {
			status = "  (deleted)"
		} else if scheduler.IsDue(h, now) {
			status = fmt.Sprintf("  due today %s", outcomeMarker(scheduler.OutcomeOn(h, now)))
		}

		stats := scheduler.StatsOf(h, now)
		fmt.Printf("%-25s  %-20s  streak %d%s\n", h.Name, h.Schedule, stats.CurrentStreak, status)
		fmt.Printf("  id: %s\n", h.ID)
	}

	return nil
}
