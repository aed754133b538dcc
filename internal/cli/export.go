package cli

import (
	"fmt"
	"os"

	"github.com/timetabled/timetabled/internal/export"
)

type ExportCmd struct {
	Month  string `short:"m" help:"Restrict export to one month (YYYY-MM)."`
	Output string `short:"o" help:"Write to a file instead of stdout." type:"path"`
}

func (c *ExportCmd) Validate() error {
	if c.Month != "" {
		return ValidateDate(c.Month + "-01")
	}
	return nil
}

func (c *ExportCmd) Run(ctx *Context) error {
	all, err := ctx.Store.AllEvents()
	if err != nil {
		return err
	}

	serialized, err := export.ICS(all, c.Month)
	if err != nil {
		return err
	}

	if c.Output == "" {
		fmt.Print(serialized)
		return nil
	}

	if err := os.WriteFile(c.Output, []byte(serialized), 0600); err != nil {
		return fmt.Errorf("failed to write calendar file: %w", err)
	}
	fmt.Printf("✓ Exported calendar to %s\n", c.Output)
	return nil
}
