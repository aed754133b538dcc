package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/timetabled/timetabled/internal/backup"
	"github.com/timetabled/timetabled/internal/config"
	"github.com/timetabled/timetabled/internal/constants"
	"github.com/timetabled/timetabled/internal/geo"
	"github.com/timetabled/timetabled/internal/locate"
	"github.com/timetabled/timetabled/internal/logger"
	"github.com/timetabled/timetabled/internal/models"
	"github.com/timetabled/timetabled/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Config    *config.Config
	ConfigDir string
	Geo       *geo.Client
	Locator   locate.Locator
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetStorePath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ValidateDate checks that a date argument is a canonical YYYY-MM-DD key.
func ValidateDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return nil
}

// ResolveEvent finds an event on a date by full ID or unambiguous ID prefix.
func ResolveEvent(store storage.Provider, date, id string) (models.Event, error) {
	events, err := store.ListEvents(date)
	if err != nil {
		return models.Event{}, err
	}

	var matches []models.Event
	for _, ev := range events {
		if ev.ID == id {
			return ev, nil
		}
		if strings.HasPrefix(ev.ID, id) {
			matches = append(matches, ev)
		}
	}

	switch len(matches) {
	case 0:
		return models.Event{}, fmt.Errorf("no event %s on %s", id, date)
	case 1:
		return matches[0], nil
	default:
		return models.Event{}, fmt.Errorf("event ID prefix %s is ambiguous on %s (%d matches)", id, date, len(matches))
	}
}

// SortedDates returns the date keys of an event map in calendar order.
func SortedDates(events map[string][]models.Event) []string {
	dates := make([]string, 0, len(events))
	for date := range events {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// FormatEvent renders one event as a table row for list output.
func FormatEvent(ev models.Event) string {
	dest := "-"
	if ev.Destination != "" {
		dest = ev.Destination
	}
	return fmt.Sprintf("  %-8s  %s  %-40s  %s", ev.ID[:8], ev.Time, truncate(ev.Text, 40), dest)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
