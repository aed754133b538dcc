package models

// PlaceCandidate is one geocoding search result. Candidates are ephemeral:
// produced per query, discarded on selection or when the next query lands.
type PlaceCandidate struct {
	ID          string
	DisplayName string
	Coord       Coordinate
}
