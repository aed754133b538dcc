package events

import (
	"context"
	"fmt"

	"github.com/timetabled/timetabled/internal/cli"
	"github.com/timetabled/timetabled/internal/lock"
	"github.com/timetabled/timetabled/internal/models"
)

type AddCmd struct {
	Date        string `arg:"" help:"Event date (YYYY-MM-DD)."`
	Text        string `arg:"" help:"Event text (maximum 60 characters)."`
	Hour        int    `short:"H" help:"Hour (0-23)." required:""`
	Minute      int    `short:"M" help:"Minute (0-59)." default:"0"`
	Destination string `short:"d" help:"Destination search query. The top match is attached to the event."`
}

func (c *AddCmd) Validate() error {
	return cli.ValidateDate(c.Date)
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	l, err := lock.Acquire(ctx.ConfigDir)
	if err != nil {
		return err
	}
	defer l.Release()

	draft := models.EventDraft{
		Hour:   c.Hour,
		Minute: c.Minute,
		Text:   c.Text,
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

	ev, err := ctx.Store.CreateEvent(c.Date, draft)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added event %s on %s at %s\n", ev.ID[:8], c.Date, ev.Time)
	if ev.Destination != "" {
		fmt.Printf("  Destination: %s\n", ev.Destination)
	}
	return nil
}

// resolveDestination geocodes a query and commits the top-ranked candidate.
func resolveDestination(ctx *cli.Context, query string) (models.PlaceCandidate, error) {
	candidates := ctx.Geo.Search(context.Background(), query)
	if len(candidates) == 0 {
		return models.PlaceCandidate{}, fmt.Errorf("no places found for %q", query)
	}
	return candidates[0], nil
}
