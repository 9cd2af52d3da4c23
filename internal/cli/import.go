package cli

import (
	"fmt"
	"os"

	"habitkit/internal/legacy"
	"habitkit/internal/logger"
)

type ImportCmd struct {
	File   string `arg:"" type:"existingfile" help:"JSON export to import."`
	DryRun bool   `help:"Decode and report without writing anything."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	habits, err := legacy.DecodeAll(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", c.File, err)
	}

	if len(habits) == 0 {
		fmt.Println("No habits found in import file.")
		return nil
	}

	if c.DryRun {
		for _, h := range habits {
			fmt.Printf("%-25s  %-20s  %d recorded days\n", h.Name, h.Schedule, len(h.History))
		}
		fmt.Printf("Dry run: %d habits would be imported.\n", len(habits))
		return nil
	}

	imported := 0
	for _, h := range habits {
		if h.OwnerID == "" {
			h.OwnerID = ctx.Owner
		}
		if err := ctx.Store.AddHabit(h); err != nil {
			logger.Warn("skipping habit on import", "name", h.Name, "err", err)
			fmt.Printf("Skipped %q: %v\n", h.Name, err)
			continue
		}
		imported++
	}

	fmt.Printf("Imported %d of %d habits.\n", imported, len(habits))
	return nil
}
