package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/timetabled/timetabled/internal/logger"
	"github.com/timetabled/timetabled/internal/models"
	"github.com/timetabled/timetabled/internal/validation"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	date        TEXT    NOT NULL,
	position    INTEGER NOT NULL,
	id          TEXT    NOT NULL,
	time        TEXT    NOT NULL,
	text        TEXT    NOT NULL,
	destination TEXT    NOT NULL DEFAULT '',
	lat         REAL,
	lng         REAL,
	PRIMARY KEY (date, id)
);
CREATE INDEX IF NOT EXISTS idx_events_date ON events(date, position);
`

// SQLiteStore provides the same bucket semantics as JSONStore over a local
// SQLite file. Insertion order is kept in an explicit position column.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	return s.open()
}

// Load opens the database, creating it when absent. An unreadable database is
// moved aside and replaced by an empty one so startup never fails on corrupt
// storage.
func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if err := s.open(); err != nil {
		logger.Warn("Event store is unreadable, starting empty", "path", s.path, "error", err)
		if s.db != nil {
			s.db.Close()
			s.db = nil
		}
		if renameErr := os.Rename(s.path, s.path+".corrupt"); renameErr != nil {
			return fmt.Errorf("failed to set aside corrupt store: %w", renameErr)
		}
		return s.open()
	}
	return nil
}

func (s *SQLiteStore) open() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) CreateEvent(date string, draft models.EventDraft) (models.Event, error) {
	if s.db == nil {
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

	var lat, lng sql.NullFloat64
	if c := draft.DestinationCoords; c != nil {
		lat = sql.NullFloat64{Float64: c.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: c.Longitude, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO events (date, position, id, time, text, destination, lat, lng)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM events WHERE date = ?), ?, ?, ?, ?, ?, ?)`,
		date, date, event.ID, event.Time, event.Text, event.Destination, lat, lng)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to insert event: %w", err)
	}

	return event, nil
}

func (s *SQLiteStore) UpdateEvent(date, id string, draft models.EventDraft) (models.Event, error) {
	if s.db == nil {
		return models.Event{}, fmt.Errorf("storage not loaded")
	}
	if err := validation.ValidateDraft(draft); err != nil {
		return models.Event{}, err
	}

	var lat, lng sql.NullFloat64
	if c := draft.DestinationCoords; c != nil {
		lat = sql.NullFloat64{Float64: c.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: c.Longitude, Valid: true}
	}

	updated := models.Event{
		ID:                id,
		Time:              validation.NormalizeTime(draft.Hour, draft.Minute),
		Text:              draft.Text,
		Destination:       draft.Destination,
		DestinationCoords: draft.DestinationCoords,
	}

	// Position is untouched, so the event keeps its place in the bucket
	res, err := s.db.Exec(`
		UPDATE events SET time = ?, text = ?, destination = ?, lat = ?, lng = ?
		WHERE date = ? AND id = ?`,
		updated.Time, updated.Text, updated.Destination, lat, lng, date, id)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Event{}, err
	}
	if n == 0 {
		return models.Event{}, fmt.Errorf("event not found: %s on %s", id, date)
	}

	return updated, nil
}

func (s *SQLiteStore) DeleteEvent(date, id string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	res, err := s.db.Exec(`DELETE FROM events WHERE date = ? AND id = ?`, date, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event not found: %s on %s", id, date)
	}
	return nil
}

func (s *SQLiteStore) ListEvents(date string) ([]models.Event, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT id, time, text, destination, lat, lng
		FROM events WHERE date = ? ORDER BY position`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (s *SQLiteStore) AllEvents() (map[string][]models.Event, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT date, id, time, text, destination, lat, lng
		FROM events ORDER BY date, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Event)
	for rows.Next() {
		var date string
		var ev models.Event
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&date, &ev.ID, &ev.Time, &ev.Text, &ev.Destination, &lat, &lng); err != nil {
			return nil, err
		}
		if lat.Valid && lng.Valid {
			ev.DestinationCoords = &models.Coordinate{Latitude: lat.Float64, Longitude: lng.Float64}
		}
		out[date] = append(out[date], ev)
	}
	return out, rows.Err()
}

func scanEvents(rows *sql.Rows) ([]models.Event, error) {
	events := []models.Event{}
	for rows.Next() {
		var ev models.Event
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&ev.ID, &ev.Time, &ev.Text, &ev.Destination, &lat, &lng); err != nil {
			return nil, err
		}
		if lat.Valid && lng.Valid {
			ev.DestinationCoords = &models.Coordinate{Latitude: lat.Float64, Longitude: lng.Float64}
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) GetStorePath() string {
	return s.path
}
