package models

import "fmt"

// RouteStep is one turn-by-turn instruction with its pre-formatted distance
// label (kilometers, two decimals).
type RouteStep struct {
	Instruction string
	Distance    string
}

// RouteResult is a computed driving route between two coordinates. At most one
// result is live per route view; a new fetch replaces it wholesale.
type RouteResult struct {
	ETAMinutes int
	DistanceKm float64
	Steps      []RouteStep
	// Geometry is the route path as GeoJSON LineString coordinates in
	// [longitude, latitude] order, handed as-is to whatever renders it.
	Geometry [][2]float64
}

// DistanceLabel returns the total distance formatted with one decimal.
func (r RouteResult) DistanceLabel() string {
	return fmt.Sprintf("%.1f km", r.DistanceKm)
}
