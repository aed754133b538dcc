package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/timetabled/timetabled/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "events.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	return store
}

func TestJSONStore_CreateAssignsIDAndNormalizesTime(t *testing.T) {
	store := newTestStore(t)

	ev, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 9, Minute: 5, Text: "Dentist"})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if ev.ID == "" {
		t.Error("Expected a generated event ID")
	}
	if ev.Time != "09:05" {
		t.Errorf("Time = %q, want 09:05", ev.Time)
	}
	if ev.Text != "Dentist" {
		t.Errorf("Text = %q, want Dentist", ev.Text)
	}
}

func TestJSONStore_CreatePreservesInsertionOrder(t *testing.T) {
	store := newTestStore(t)

	texts := []string{"First", "Second", "Third"}
	for i, text := range texts {
		if _, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 18 - i, Minute: 0, Text: text}); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	events, err := store.ListEvents("2026-08-15")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	// Insertion order wins, not time order
	for i, text := range texts {
		if events[i].Text != text {
			t.Errorf("events[%d].Text = %q, want %q", i, events[i].Text, text)
		}
	}
}

func TestJSONStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}

	coord := &models.Coordinate{Latitude: 40.758, Longitude: -73.9855}
	if _, err := store.CreateEvent("2026-08-15", models.EventDraft{
		Hour: 14, Minute: 30, Text: "Theater",
		Destination: "Times Square, New York", DestinationCoords: coord,
	}); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if _, err := store.CreateEvent("2026-09-01", models.EventDraft{Hour: 8, Minute: 0, Text: "Flight"}); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	before, err := store.AllEvents()
	if err != nil {
		t.Fatalf("AllEvents failed: %v", err)
	}

	// A fresh store reading the same file sees identical contents
	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	after, err := reloaded.AllEvents()
	if err != nil {
		t.Fatalf("AllEvents failed: %v", err)
	}

	if diff := deep.Equal(before, after); diff != nil {
		t.Errorf("Reloaded store differs: %v", diff)
	}
}

func TestJSONStore_UpdateReplacesInPlace(t *testing.T) {
	store := newTestStore(t)

	var ids []string
	for _, text := range []string{"First", "Second", "Third"} {
		ev, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 9, Minute: 0, Text: text})
		if err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
		ids = append(ids, ev.ID)
	}

	updated, err := store.UpdateEvent("2026-08-15", ids[1], models.EventDraft{Hour: 10, Minute: 45, Text: "Second (moved)"})
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if updated.ID != ids[1] {
		t.Errorf("Update changed the event ID: %s -> %s", ids[1], updated.ID)
	}
	if updated.Time != "10:45" {
		t.Errorf("Time = %q, want 10:45", updated.Time)
	}

	events, _ := store.ListEvents("2026-08-15")
	if len(events) != 3 {
		t.Fatalf("Expected 3 events after update, got %d", len(events))
	}
	if events[1].ID != ids[1] || events[1].Text != "Second (moved)" {
		t.Errorf("Updated event not in its original position: %+v", events[1])
	}
}

func TestJSONStore_UpdateUnknownEvent(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.UpdateEvent("2026-08-15", "no-such-id", models.EventDraft{Hour: 9, Minute: 0, Text: "x"}); err == nil {
		t.Error("Expected error updating a nonexistent event")
	}
}

func TestJSONStore_DeleteRemovesEmptyBucket(t *testing.T) {
	store := newTestStore(t)

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
		t.Error("Expected empty bucket to be removed from the mapping")
	}
}

func TestJSONStore_DeleteKeepsSiblings(t *testing.T) {
	store := newTestStore(t)

	first, _ := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 9, Minute: 0, Text: "First"})
	second, _ := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 10, Minute: 0, Text: "Second"})

	if err := store.DeleteEvent("2026-08-15", first.ID); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}

	events, _ := store.ListEvents("2026-08-15")
	if len(events) != 1 || events[0].ID != second.ID {
		t.Errorf("Expected only the second event to remain, got %+v", events)
	}
}

func TestJSONStore_DeleteUnknownEvent(t *testing.T) {
	store := newTestStore(t)

	if err := store.DeleteEvent("2026-08-15", "no-such-id"); err == nil {
		t.Error("Expected error deleting from a nonexistent date")
	}
}

func TestJSONStore_RejectsInvalidDraft(t *testing.T) {
	store := newTestStore(t)

	cases := []models.EventDraft{
		{Hour: 24, Minute: 0, Text: "Bad hour"},
		{Hour: 12, Minute: 60, Text: "Bad minute"},
		{Hour: 12, Minute: 0, Text: strings.Repeat("a", 61)},
	}
	for _, draft := range cases {
		if _, err := store.CreateEvent("2026-08-15", draft); err == nil {
			t.Errorf("Expected CreateEvent to reject draft %+v", draft)
		}
	}

	// Nothing was persisted
	all, _ := store.AllEvents()
	if len(all) != 0 {
		t.Errorf("Expected empty store after rejected drafts, got %d buckets", len(all))
	}
}

func TestJSONStore_LoadMissingFileStartsEmpty(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "events.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}

	all, err := store.AllEvents()
	if err != nil {
		t.Fatalf("AllEvents failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Expected empty store, got %d buckets", len(all))
	}
}

func TestJSONStore_LoadCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load of corrupt file should not fail, got %v", err)
	}

	all, err := store.AllEvents()
	if err != nil {
		t.Fatalf("AllEvents failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Expected empty store after corrupt load, got %d buckets", len(all))
	}

	// The store stays usable for new events
	if _, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 9, Minute: 0, Text: "Fresh start"}); err != nil {
		t.Errorf("CreateEvent after corrupt load failed: %v", err)
	}
}

func TestJSONStore_ListReturnsCopy(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 9, Minute: 0, Text: "Original"}); err != nil {
		t.Fatal(err)
	}

	events, _ := store.ListEvents("2026-08-15")
	events[0].Text = "Mutated"

	again, _ := store.ListEvents("2026-08-15")
	if again[0].Text != "Original" {
		t.Error("Mutating a listed slice leaked into the store")
	}
}

func TestJSONStore_UpdateWithUnchangedDraftLeavesBucketIdentical(t *testing.T) {
	store := newTestStore(t)

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

	// Re-submitting the middle event's fields unchanged must not disturb
	// id, order or any field of the bucket
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
