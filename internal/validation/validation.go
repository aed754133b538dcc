package validation

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/timetabled/timetabled/internal/constants"
	"github.com/timetabled/timetabled/internal/models"
)

// NormalizeTime renders hour/minute fields as the padded HH:MM form stored on
// events. Callers must validate ranges first; this is pure formatting.
func NormalizeTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ValidateDraft checks an event draft at the input boundary. Out-of-range
// hours and minutes are rejected, not clamped, and text over the cap is
// rejected rather than truncated.
func ValidateDraft(draft models.EventDraft) error {
	if draft.Hour < 0 || draft.Hour > 23 {
		return fmt.Errorf("hour must be between 0 and 23, got %d", draft.Hour)
	}
	if draft.Minute < 0 || draft.Minute > 59 {
		return fmt.Errorf("minute must be between 0 and 59, got %d", draft.Minute)
	}
	if n := utf8.RuneCountInString(draft.Text); n > constants.MaxEventTextLen {
		return fmt.Errorf("event text must be at most %d characters, got %d", constants.MaxEventTextLen, n)
	}
	return nil
}

// ValidateHourField and ValidateMinuteField validate raw form input. Empty
// input is rejected: both time components are required.
func ValidateHourField(s string) error {
	return validateIntField(s, "hour", 0, 23)
}

func ValidateMinuteField(s string) error {
	return validateIntField(s, "minute", 0, 59)
}

func validateIntField(s, name string, min, max int) error {
	if s == "" {
		return fmt.Errorf("%s is required", name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s must be a number", name)
	}
	if v < min || v > max {
		return fmt.Errorf("%s must be between %d and %d", name, min, max)
	}
	return nil
}
