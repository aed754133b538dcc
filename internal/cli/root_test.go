package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/timetabled/timetabled/internal/models"
	"github.com/timetabled/timetabled/internal/storage"
)

func TestValidateDate(t *testing.T) {
	cases := []struct {
		date    string
		wantErr bool
	}{
		{"2026-08-15", false},
		{"2026-02-29", true}, // not a leap year
		{"2024-02-29", false},
		{"2026-13-01", true},
		{"15-08-2026", true},
		{"2026-8-15", true}, // components must be padded
		{"", true},
	}

	for _, c := range cases {
		err := ValidateDate(c.date)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateDate(%q) error = %v, wantErr %v", c.date, err, c.wantErr)
		}
	}
}

func TestResolveEvent(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "events.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	first, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 9, Minute: 0, Text: "First"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.CreateEvent("2026-08-15", models.EventDraft{Hour: 10, Minute: 0, Text: "Second"})
	if err != nil {
		t.Fatal(err)
	}

	// Full ID
	got, err := ResolveEvent(store, "2026-08-15", first.ID)
	if err != nil || got.ID != first.ID {
		t.Errorf("ResolveEvent by full ID = %+v, %v", got, err)
	}

	// Unambiguous prefix
	prefix := second.ID[:8]
	if strings.HasPrefix(first.ID, prefix) {
		t.Skip("UUID prefix collision in test data")
	}
	got, err = ResolveEvent(store, "2026-08-15", prefix)
	if err != nil || got.ID != second.ID {
		t.Errorf("ResolveEvent by prefix = %+v, %v", got, err)
	}

	// Unknown ID
	if _, err := ResolveEvent(store, "2026-08-15", "ffffffff"); err == nil {
		t.Error("Expected error for unknown event ID")
	}

	// Wrong date
	if _, err := ResolveEvent(store, "2026-08-16", first.ID); err == nil {
		t.Error("Expected error for event on another date")
	}

	// Empty prefix matches everything and is ambiguous
	if _, err := ResolveEvent(store, "2026-08-15", ""); err == nil {
		t.Error("Expected ambiguity error for empty prefix")
	}
}

func TestFormatEvent(t *testing.T) {
	ev := models.Event{
		ID:          "abcdef12-3456-7890-abcd-ef1234567890",
		Time:        "09:30",
		Text:        "Dentist",
		Destination: "Main Street Clinic",
	}
	line := FormatEvent(ev)
	for _, want := range []string{"abcdef12", "09:30", "Dentist", "Main Street Clinic"} {
		if !strings.Contains(line, want) {
			t.Errorf("FormatEvent missing %q in %q", want, line)
		}
	}

	noDest := models.Event{ID: "abcdef12-3456", Time: "09:30", Text: "Plain"}
	if !strings.Contains(FormatEvent(noDest), "-") {
		t.Error("Expected placeholder for missing destination")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 50)
	got := truncate(long, 40)
	if len([]rune(got)) != 40 {
		t.Errorf("truncate length = %d, want 40", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate(%q) = %q, want ellipsis suffix", long, got)
	}
}
