package storage

import "github.com/timetabled/timetabled/internal/models"

// Provider is the event store. Dates are canonical YYYY-MM-DD keys; each key
// maps to an ordered event bucket (insertion order). Every mutation persists
// before returning. A bucket emptied by delete is removed from the mapping.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Events
	CreateEvent(date string, draft models.EventDraft) (models.Event, error)
	UpdateEvent(date, id string, draft models.EventDraft) (models.Event, error)
	DeleteEvent(date, id string) error
	ListEvents(date string) ([]models.Event, error)
	AllEvents() (map[string][]models.Event, error)

	// Utils
	GetStorePath() string
}
