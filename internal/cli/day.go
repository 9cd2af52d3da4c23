package cli

import (
	"fmt"
	"sort"
	"strings"

	"habitkit/internal/scheduler"
)

type DayCmd struct {
	Date string `arg:"" optional:"" default:"today" help:"Day to inspect (YYYY-MM-DD or 'today')."`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	window := scheduler.DateWindow(date, 3, 3)
	var strip []string
	for i, d := range window {
		label := d.Label
		if i == 3 {
			label = fmt.Sprintf("[%s]", label)
		}
		strip = append(strip, label)
	}
	fmt.Println(strings.Join(strip, "  "))
	fmt.Println()

	habits, err := ctx.Store.GetAllHabits(ctx.Owner, false)
	if err != nil {
		return err
	}

	var due []int
	for i, h := range habits {
		if scheduler.IsDue(h, date) {
			due = append(due, i)
		}
	}

	if len(due) == 0 {
		fmt.Printf("Nothing scheduled for %s.\n", scheduler.FormatDay(date))
		return nil
	}

	sort.Slice(due, func(i, j int) bool {
		return habits[due[i]].Name < habits[due[j]].Name
	})

	for _, i := range due {
		h := habits[i]
		fmt.Printf("%s %s\n", outcomeMarker(scheduler.OutcomeOn(h, date)), h.Name)
	}

	return nil
}
