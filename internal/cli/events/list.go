package events

import (
	"fmt"
	"strings"

	"github.com/timetabled/timetabled/internal/cli"
)

type ListCmd struct {
	Date  string `arg:"" optional:"" help:"Restrict to one date (YYYY-MM-DD)."`
	Month string `short:"m" help:"Restrict to one month (YYYY-MM)."`
}

func (c *ListCmd) Validate() error {
	if c.Date != "" && c.Month != "" {
		return fmt.Errorf("date argument and --month are mutually exclusive")
	}
	if c.Date != "" {
		return cli.ValidateDate(c.Date)
	}
	if c.Month != "" {
		return cli.ValidateDate(c.Month + "-01")
	}
	return nil
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if c.Date != "" {
		events, err := ctx.Store.ListEvents(c.Date)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Printf("No events on %s.\n", c.Date)
			return nil
		}
		fmt.Printf("%s:\n", c.Date)
		for _, ev := range events {
			fmt.Println(cli.FormatEvent(ev))
		}
		return nil
	}

	all, err := ctx.Store.AllEvents()
	if err != nil {
		return err
	}

	total := 0
	for _, date := range cli.SortedDates(all) {
		if c.Month != "" && !strings.HasPrefix(date, c.Month+"-") {
			continue
		}
		fmt.Printf("%s:\n", date)
		for _, ev := range all[date] {
			fmt.Println(cli.FormatEvent(ev))
			total++
		}
	}
	if total == 0 {
		fmt.Println("No events found.")
	}
	return nil
}
