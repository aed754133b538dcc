package validation

import (
	"strings"
	"testing"

	"github.com/timetabled/timetabled/internal/models"
)

func TestNormalizeTime_PadsComponents(t *testing.T) {
	cases := []struct {
		hour, minute int
		want         string
	}{
		{9, 5, "09:05"},
		{0, 0, "00:00"},
		{23, 59, "23:59"},
		{14, 30, "14:30"},
	}

	for _, c := range cases {
		if got := NormalizeTime(c.hour, c.minute); got != c.want {
			t.Errorf("NormalizeTime(%d, %d) = %q, want %q", c.hour, c.minute, got, c.want)
		}
	}
}

func TestValidateDraft_RejectsOutOfRangeHour(t *testing.T) {
	for _, hour := range []int{-1, 24, 100} {
		draft := models.EventDraft{Hour: hour, Minute: 0, Text: "Dentist"}
		if err := ValidateDraft(draft); err == nil {
			t.Errorf("Expected error for hour %d", hour)
		}
	}
}

func TestValidateDraft_RejectsOutOfRangeMinute(t *testing.T) {
	for _, minute := range []int{-1, 60, 75} {
		draft := models.EventDraft{Hour: 12, Minute: minute, Text: "Dentist"}
		if err := ValidateDraft(draft); err == nil {
			t.Errorf("Expected error for minute %d", minute)
		}
	}
}

func TestValidateDraft_TextLengthBoundary(t *testing.T) {
	atCap := models.EventDraft{Hour: 12, Minute: 0, Text: strings.Repeat("a", 60)}
	if err := ValidateDraft(atCap); err != nil {
		t.Errorf("Expected 60-character text at the cap to pass, got %v", err)
	}

	overCap := models.EventDraft{Hour: 12, Minute: 0, Text: strings.Repeat("a", 61)}
	if err := ValidateDraft(overCap); err == nil {
		t.Error("Expected 61-character text to be rejected")
	}
}

func TestValidateDraft_TextLengthCountsRunes(t *testing.T) {
	// 60 multibyte characters are within the cap even though the byte
	// length is far beyond it
	draft := models.EventDraft{Hour: 12, Minute: 0, Text: strings.Repeat("ü", 60)}
	if err := ValidateDraft(draft); err != nil {
		t.Errorf("Expected 60 multibyte runes to pass, got %v", err)
	}
}

func TestValidateHourField(t *testing.T) {
	cases := []struct {
		input   string
		wantErr bool
	}{
		{"0", false},
		{"9", false},
		{"23", false},
		{"24", true},
		{"-1", true},
		{"", true},
		{"abc", true},
		{"9x", true},
	}

	for _, c := range cases {
		err := ValidateHourField(c.input)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateHourField(%q) error = %v, wantErr %v", c.input, err, c.wantErr)
		}
	}
}

func TestValidateMinuteField(t *testing.T) {
	cases := []struct {
		input   string
		wantErr bool
	}{
		{"0", false},
		{"59", false},
		{"60", true},
		{"-5", true},
		{"", true},
		{"half", true},
	}

	for _, c := range cases {
		err := ValidateMinuteField(c.input)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateMinuteField(%q) error = %v, wantErr %v", c.input, err, c.wantErr)
		}
	}
}
