package export

import (
	"strings"
	"testing"

	"github.com/timetabled/timetabled/internal/models"
)

func sampleEvents() map[string][]models.Event {
	return map[string][]models.Event{
		"2026-08-15": {
			{
				ID:          "11111111-aaaa-bbbb-cccc-000000000001",
				Time:        "19:30",
				Text:        "Theater",
				Destination: "Times Square, New York",
				DestinationCoords: &models.Coordinate{
					Latitude:  40.758,
					Longitude: -73.9855,
				},
			},
		},
		"2026-09-01": {
			{ID: "11111111-aaaa-bbbb-cccc-000000000002", Time: "08:00", Text: "Flight"},
		},
	}
}

func TestICS_SerializesEvents(t *testing.T) {
	out, err := ICS(sampleEvents(), "")
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"END:VCALENDAR",
		"SUMMARY:Theater",
		"SUMMARY:Flight",
		"LOCATION:Times Square",
		"GEO:40.758000;-73.985500",
		"UID:11111111-aaaa-bbbb-cccc-000000000001",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Serialized calendar missing %q", want)
		}
	}
}

func TestICS_MonthFilter(t *testing.T) {
	out, err := ICS(sampleEvents(), "2026-08")
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}

	if !strings.Contains(out, "SUMMARY:Theater") {
		t.Error("August event missing from August export")
	}
	if strings.Contains(out, "SUMMARY:Flight") {
		t.Error("September event leaked into August export")
	}
}

func TestICS_NoGeoWithoutCoordinates(t *testing.T) {
	events := map[string][]models.Event{
		"2026-08-15": {{ID: "id-1", Time: "09:00", Text: "Plain"}},
	}
	out, err := ICS(events, "")
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}
	if strings.Contains(out, "GEO:") {
		t.Error("GEO property emitted for an event without coordinates")
	}
	if strings.Contains(out, "LOCATION:") {
		t.Error("LOCATION property emitted for an event without a destination")
	}
}

func TestICS_MalformedTimeIsAnError(t *testing.T) {
	events := map[string][]models.Event{
		"2026-08-15": {{ID: "id-1", Time: "not-a-time", Text: "Broken"}},
	}
	if _, err := ICS(events, ""); err == nil {
		t.Error("Expected error for malformed event time")
	}
}

func TestICS_EmptyStore(t *testing.T) {
	out, err := ICS(map[string][]models.Event{}, "")
	if err != nil {
		t.Fatalf("ICS failed: %v", err)
	}
	if !strings.Contains(out, "BEGIN:VCALENDAR") {
		t.Error("Expected a valid empty calendar")
	}
}
