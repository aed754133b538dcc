package events

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/timetabled/timetabled/internal/cli"
	"github.com/timetabled/timetabled/internal/lock"
	"github.com/timetabled/timetabled/internal/models"
)

type EditCmd struct {
	Date        string `arg:"" help:"Event date (YYYY-MM-DD)."`
	ID          string `arg:"" help:"Event ID or unambiguous prefix."`
	Text        string `short:"t" help:"New event text."`
	Hour        int    `short:"H" help:"New hour (0-23)." default:"-1"`
	Minute      int    `short:"M" help:"New minute (0-59)." default:"-1"`
	Destination string `short:"d" help:"New destination search query. The top match replaces the current destination."`
	ClearDest   bool   `help:"Remove the destination from the event."`
}

func (c *EditCmd) Validate() error {
	if err := cli.ValidateDate(c.Date); err != nil {
		return err
	}
	if c.Destination != "" && c.ClearDest {
		return fmt.Errorf("--destination and --clear-dest are mutually exclusive")
	}
	return nil
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	l, err := lock.Acquire(ctx.ConfigDir)
	if err != nil {
		return err
	}
	defer l.Release()

	ev, err := cli.ResolveEvent(ctx.Store, c.Date, c.ID)
	if err != nil {
		return err
	}

	// Unchanged fields carry over from the stored event.
	draft := models.EventDraft{
		Text:              ev.Text,
		Destination:       ev.Destination,
		DestinationCoords: ev.DestinationCoords,
	}
	parts := strings.SplitN(ev.Time, ":", 2)
	draft.Hour, _ = strconv.Atoi(parts[0])
	if len(parts) > 1 {
		draft.Minute, _ = strconv.Atoi(parts[1])
	}

	if c.Text != "" {
		draft.Text = c.Text
	}
	if c.Hour >= 0 {
		draft.Hour = c.Hour
	}
	if c.Minute >= 0 {
		draft.Minute = c.Minute
	}
	if c.ClearDest {
		draft.Destination = ""
		draft.DestinationCoords = nil
	}
	if c.Destination != "" {
		place, err := resolveDestination(ctx, c.Destination)
		if err != nil {
			return err
		}
		draft.Destination = place.DisplayName
		coord := place.Coord
		draft.DestinationCoords = &coord
	}

	updated, err := ctx.Store.UpdateEvent(c.Date, ev.ID, draft)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Updated event %s on %s\n", updated.ID[:8], c.Date)
	return nil
}
