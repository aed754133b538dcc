package models

// Coordinate is a WGS84 point. JSON field names match the persisted store
// schema.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Event is a single calendar entry. Events live inside the date bucket that
// owns them; the date itself is the bucket key, not an event field.
type Event struct {
	ID                string      `json:"id"`
	Time              string      `json:"time"` // HH:MM, zero-padded
	Text              string      `json:"text"`
	Destination       string      `json:"destination,omitempty"`
	DestinationCoords *Coordinate `json:"destinationCoords,omitempty"`
}

// EventDraft carries user input into the store's create/update operations.
// Hour and Minute arrive as separate fields, mirroring the two time inputs of
// the editor, and are normalized into Event.Time by the store.
type EventDraft struct {
	Hour              int
	Minute            int
	Text              string
	Destination       string
	DestinationCoords *Coordinate
}
