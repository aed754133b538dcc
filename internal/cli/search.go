package cli

import (
	"context"
	"fmt"
)

type SearchCmd struct {
	Query string `arg:"" help:"Free-text place query."`
}

func (c *SearchCmd) Run(ctx *Context) error {
	candidates := ctx.Geo.Search(context.Background(), c.Query)
	if len(candidates) == 0 {
		fmt.Printf("No places found for %q.\n", c.Query)
		return nil
	}

	fmt.Printf("Places matching %q:\n\n", c.Query)
	for i, place := range candidates {
		fmt.Printf("  %d. %s\n", i+1, place.DisplayName)
		fmt.Printf("     %.5f, %.5f\n", place.Coord.Latitude, place.Coord.Longitude)
	}
	return nil
}
