package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"habitkit/internal/backup"
	"habitkit/internal/logger"
	"habitkit/internal/storage"
	"habitkit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Snapshot the store on startup so an interactive session can
	// always be rolled back.
	if _, remote := ctx.Store.(*storage.PostgresStore); !remote {
		if _, err := backup.NewManager(ctx.Store.GetConfigPath()).CreateBackup(); err != nil {
			logger.Warn("automatic backup failed", "err", err)
		}
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Owner), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
