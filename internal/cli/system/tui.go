package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timetabled/timetabled/internal/cli"
	"github.com/timetabled/timetabled/internal/lock"
	"github.com/timetabled/timetabled/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// The TUI mutates the store, so it takes the single-writer lock for its
	// whole lifetime.
	l, err := lock.Acquire(ctx.ConfigDir)
	if err != nil {
		return err
	}
	defer l.Release()

	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Geo, ctx.Locator), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
