package cli

import (
	"fmt"

	"habitkit/internal/validation"
)

type ValidateCmd struct {
	All bool `short:"a" help:"Include soft-deleted habits."`
}

func (c *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(ctx.Owner, c.All)
	if err != nil {
		return err
	}

	result := validation.ValidateHabits(habits)
	fmt.Print(result.FormatReport())

	if result.HasErrors() {
		return fmt.Errorf("validation found problems")
	}
	return nil
}
