package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/timetabled/timetabled/internal/constants"
	"github.com/timetabled/timetabled/internal/models"
)

// DefaultEventDuration is assumed for exported events; the store only records
// a start time.
const DefaultEventDuration = time.Hour

// ICS renders event buckets as an RFC 5545 calendar. monthPrefix, when
// non-empty ("YYYY-MM"), restricts the export to that month's date keys.
func ICS(events map[string][]models.Event, monthPrefix string) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//timetabled//calendar//EN")

	dates := make([]string, 0, len(events))
	for date := range events {
		if monthPrefix != "" && !strings.HasPrefix(date, monthPrefix+"-") {
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		for _, ev := range events[date] {
			start, err := time.ParseInLocation(
				constants.DateFormat+" "+constants.TimeFormat,
				date+" "+ev.Time, time.Local)
			if err != nil {
				return "", fmt.Errorf("event %s on %s has malformed time %q: %w", ev.ID, date, ev.Time, err)
			}

			vevent := cal.AddEvent(ev.ID)
			vevent.SetStartAt(start)
			vevent.SetEndAt(start.Add(DefaultEventDuration))
			vevent.SetSummary(ev.Text)
			if ev.Destination != "" {
				vevent.SetLocation(ev.Destination)
			}
			if c := ev.DestinationCoords; c != nil {
				vevent.SetProperty(ics.ComponentProperty(ics.PropertyGeo),
					fmt.Sprintf("%f;%f", c.Latitude, c.Longitude))
			}
		}
	}

	return cal.Serialize(), nil
}
