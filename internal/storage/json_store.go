package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/timetabled/timetabled/internal/logger"
	"github.com/timetabled/timetabled/internal/models"
	"github.com/timetabled/timetabled/internal/validation"
)

// Store is the persisted form: the whole date-to-bucket mapping in one slot.
type Store struct {
	Version int                       `json:"version"`
	Events  map[string][]models.Event `json:"events"`
}

// JSONStore keeps the mapping in memory and rewrites the backing file on
// every mutation.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(storePath string) *JSONStore {
	return &JSONStore{
		path: storePath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Events:  make(map[string][]models.Event),
	}

	return s.save()
}

// Load reads the persisted mapping once at startup. A missing, corrupt, or
// incompatible file never fails the load: the store starts empty and the
// problem is logged.
func (s *JSONStore) Load() error {
	s.store = &Store{
		Version: 1,
		Events:  make(map[string][]models.Event),
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logger.Warn("Could not read event store, starting empty", "path", s.path, "error", err)
		return nil
	}

	var loaded Store
	if err := json.Unmarshal(data, &loaded); err != nil {
		logger.Warn("Event store is unreadable, starting empty", "path", s.path, "error", err)
		return nil
	}

	if loaded.Events == nil {
		loaded.Events = make(map[string][]models.Event)
	}
	s.store = &loaded

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) CreateEvent(date string, draft models.EventDraft) (models.Event, error) {
	if s.store == nil {
		return models.Event{}, fmt.Errorf("storage not loaded")
	}
	if err := validation.ValidateDraft(draft); err != nil {
		return models.Event{}, err
	}

	event := models.Event{
		ID:                uuid.New().String(),
		Time:              validation.NormalizeTime(draft.Hour, draft.Minute),
		Text:              draft.Text,
		Destination:       draft.Destination,
		DestinationCoords: draft.DestinationCoords,
	}

	s.store.Events[date] = append(s.store.Events[date], event)
	if err := s.save(); err != nil {
		return models.Event{}, err
	}
	return event, nil
}

func (s *JSONStore) UpdateEvent(date, id string, draft models.EventDraft) (models.Event, error) {
	if s.store == nil {
		return models.Event{}, fmt.Errorf("storage not loaded")
	}
	if err := validation.ValidateDraft(draft); err != nil {
		return models.Event{}, err
	}

	bucket := s.store.Events[date]
	for i, ev := range bucket {
		if ev.ID != id {
			continue
		}
		// Replace in place, keeping position and id
		updated := models.Event{
			ID:                ev.ID,
			Time:              validation.NormalizeTime(draft.Hour, draft.Minute),
			Text:              draft.Text,
			Destination:       draft.Destination,
			DestinationCoords: draft.DestinationCoords,
		}
		bucket[i] = updated
		if err := s.save(); err != nil {
			return models.Event{}, err
		}
		return updated, nil
	}

	return models.Event{}, fmt.Errorf("event not found: %s on %s", id, date)
}

func (s *JSONStore) DeleteEvent(date, id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	bucket, ok := s.store.Events[date]
	if !ok {
		return fmt.Errorf("no events on %s", date)
	}

	for i, ev := range bucket {
		if ev.ID != id {
			continue
		}
		bucket = append(bucket[:i], bucket[i+1:]...)
		if len(bucket) == 0 {
			// Empty buckets are removed rather than kept as empty lists
			delete(s.store.Events, date)
		} else {
			s.store.Events[date] = bucket
		}
		return s.save()
	}

	return fmt.Errorf("event not found: %s on %s", id, date)
}

func (s *JSONStore) ListEvents(date string) ([]models.Event, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	bucket := s.store.Events[date]
	out := make([]models.Event, len(bucket))
	copy(out, bucket)
	return out, nil
}

func (s *JSONStore) AllEvents() (map[string][]models.Event, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	out := make(map[string][]models.Event, len(s.store.Events))
	for date, bucket := range s.store.Events {
		cp := make([]models.Event, len(bucket))
		copy(cp, bucket)
		out[date] = cp
	}
	return out, nil
}

func (s *JSONStore) GetStorePath() string {
	return s.path
}
