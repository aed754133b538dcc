package storage

import (
	"path/filepath"
	"testing"

	"github.com/go-test/deep"

	"github.com/timetabled/timetabled/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "events.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_CreateAndList(t *testing.T) {
	store := newTestSQLiteStore(t)

	ev, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 9, Minute: 5, Text: "Dentist"})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if ev.Time != "09:05" {
		t.Errorf("Time = %q, want 09:05", ev.Time)
	}

	events, err := store.ListEvents("2026-08-15")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if diff := deep.Equal(events[0], ev); diff != nil {
		t.Errorf("Listed event differs from created: %v", diff)
	}
}

func TestSQLiteStore_InsertionOrderSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}

	texts := []string{"First", "Second", "Third"}
	for i, text := range texts {
		// Descending times: position, not time, decides order
		if _, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 20 - i, Minute: 0, Text: text}); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	events, err := reopened.ListEvents("2026-08-15")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	for i, text := range texts {
		if events[i].Text != text {
			t.Errorf("events[%d].Text = %q, want %q", i, events[i].Text, text)
		}
	}
}

func TestSQLiteStore_UpdateKeepsPosition(t *testing.T) {
	store := newTestSQLiteStore(t)

	var ids []string
	for _, text := range []string{"First", "Second", "Third"} {
		ev, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 9, Minute: 0, Text: text})
		if err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
		ids = append(ids, ev.ID)
	}

	if _, err := store.UpdateEvent("2026-08-15", ids[0], models.EventDraft{Hour: 23, Minute: 59, Text: "First (late)"}); err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}

	events, _ := store.ListEvents("2026-08-15")
	if events[0].ID != ids[0] || events[0].Text != "First (late)" {
		t.Errorf("Updated event moved out of position: %+v", events[0])
	}
}

func TestSQLiteStore_CoordinatesRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	coord := &models.Coordinate{Latitude: 40.758, Longitude: -73.9855}
	ev, err := store.CreateEvent("2026-08-15", models.EventDraft{
		Hour: 19, Minute: 30, Text: "Theater",
		Destination: "Times Square, New York", DestinationCoords: coord,
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	events, _ := store.ListEvents("2026-08-15")
	got := events[0]
	if got.DestinationCoords == nil {
		t.Fatal("Expected destination coordinates to round-trip")
	}
	if diff := deep.Equal(got.DestinationCoords, ev.DestinationCoords); diff != nil {
		t.Errorf("Coordinates differ: %v", diff)
	}

	// Events without a destination come back with nil coordinates
	plain, err := store.CreateEvent("2026-08-16", models.EventDraft{Hour: 9, Minute: 0, Text: "No destination"})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	others, _ := store.ListEvents("2026-08-16")
	if others[0].ID != plain.ID {
		t.Fatalf("Unexpected event: %+v", others[0])
	}
	if others[0].DestinationCoords != nil {
		t.Error("Expected nil coordinates for a destination-less event")
	}
}

func TestSQLiteStore_DeleteEmptiesBucket(t *testing.T) {
	store := newTestSQLiteStore(t)

	ev, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 9, Minute: 0, Text: "Only one"})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if err := store.DeleteEvent("2026-08-15", ev.ID); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}

	all, err := store.AllEvents()
	if err != nil {
		t.Fatalf("AllEvents failed: %v", err)
	}
	if _, exists := all["2026-08-15"]; exists {
		t.Error("Expected no bucket for the emptied date")
	}
}

func TestSQLiteStore_AllEventsGroupsByDate(t *testing.T) {
	store := newTestSQLiteStore(t)

	dates := []string{"2026-08-15", "2026-08-15", "2026-09-01"}
	for i, date := range dates {
		if _, err := store.CreateEvent(date, models.EventDraft{Hour: 9 + i, Minute: 0, Text: "Event"}); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	all, err := store.AllEvents()
	if err != nil {
		t.Fatalf("AllEvents failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(all))
	}
	if len(all["2026-08-15"]) != 2 {
		t.Errorf("Expected 2 events on 2026-08-15, got %d", len(all["2026-08-15"]))
	}
	if len(all["2026-09-01"]) != 1 {
		t.Errorf("Expected 1 event on 2026-09-01, got %d", len(all["2026-09-01"]))
	}
}

func TestSQLiteStore_RejectsInvalidDraft(t *testing.T) {
	store := newTestSQLiteStore(t)

	if _, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 24, Minute: 0, Text: "Bad"}); err == nil {
		t.Error("Expected CreateEvent to reject an out-of-range hour")
	}
	if _, err := store.UpdateEvent("2026-08-15", "any", models.EventDraft{Hour: 0, Minute: 61, Text: "Bad"}); err == nil {
		t.Error("Expected UpdateEvent to reject an out-of-range minute")
	}
}

func TestSQLiteStore_UpdateWithUnchangedDraftLeavesBucketIdentical(t *testing.T) {
	store := newTestSQLiteStore(t)

	coord := models.Coordinate{Latitude: 40.758, Longitude: -73.9855}
	drafts := []models.EventDraft{
		{Hour: 9, Minute: 0, Text: "Standup"},
		{Hour: 12, Minute: 30, Text: "Lunch", Destination: "Times Square", DestinationCoords: &coord},
		{Hour: 17, Minute: 15, Text: "Gym"},
	}
	for _, d := range drafts {
		if _, err := store.CreateEvent("2026-08-15", d); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	before, err := store.ListEvents("2026-08-15")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}

	if _, err := store.UpdateEvent("2026-08-15", before[1].ID, drafts[1]); err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}

	after, err := store.ListEvents("2026-08-15")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if diff := deep.Equal(before, after); diff != nil {
		t.Errorf("Unchanged update altered the bucket: %v", diff)
	}
}
