package cli

import (
	"context"
	"fmt"
)

type RouteCmd struct {
	Date string `arg:"" help:"Event date (YYYY-MM-DD)."`
	ID   string `arg:"" help:"Event ID or unambiguous prefix."`
}

func (c *RouteCmd) Validate() error {
	return ValidateDate(c.Date)
}

func (c *RouteCmd) Run(ctx *Context) error {
	ev, err := ResolveEvent(ctx.Store, c.Date, c.ID)
	if err != nil {
		return err
	}
	if ev.DestinationCoords == nil {
		return fmt.Errorf("event %s has no destination", ev.ID[:8])
	}

	origin, err := ctx.Locator.Locate(context.Background())
	if err != nil {
		return fmt.Errorf("could not determine your location: %w", err)
	}

	route, err := ctx.Geo.Route(context.Background(), origin, *ev.DestinationCoords)
	if err != nil {
		return err
	}
	if route == nil {
		fmt.Printf("No route found to %s.\n", ev.Destination)
		return nil
	}

	fmt.Printf("Route to %s\n", ev.Destination)
	fmt.Printf("From %.4f, %.4f\n\n", origin.Latitude, origin.Longitude)
	fmt.Printf("ETA %d min, %s\n\n", route.ETAMinutes, route.DistanceLabel())
	fmt.Println("Directions:")
	for i, step := range route.Steps {
		fmt.Printf("  %2d. %s  %s\n", i+1, step.Instruction, step.Distance)
	}
	return nil
}
