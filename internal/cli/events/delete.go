package events

import (
	"fmt"

	"github.com/timetabled/timetabled/internal/cli"
	"github.com/timetabled/timetabled/internal/lock"
)

type DeleteCmd struct {
	Date string `arg:"" help:"Event date (YYYY-MM-DD)."`
	ID   string `arg:"" help:"Event ID or unambiguous prefix."`
}

func (c *DeleteCmd) Validate() error {
	return cli.ValidateDate(c.Date)
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	l, err := lock.Acquire(ctx.ConfigDir)
	if err != nil {
		return err
	}
	defer l.Release()

	ev, err := cli.ResolveEvent(ctx.Store, c.Date, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteEvent(c.Date, ev.ID); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted event %s (%s  %s)\n", ev.ID[:8], ev.Time, ev.Text)
	return nil
}
