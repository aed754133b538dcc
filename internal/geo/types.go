package geo

// Wire types for the Mapbox geocoding and directions responses. Only the
// fields the application consumes are declared.

type geocodeResponse struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID        string     `json:"id"`
	PlaceName string     `json:"place_name"`
	Center    [2]float64 `json:"center"` // [longitude, latitude]
}

type directionsResponse struct {
	Routes []route `json:"routes"`
}

type route struct {
	Duration float64  `json:"duration"` // seconds
	Distance float64  `json:"distance"` // meters
	Geometry geometry `json:"geometry"`
	Legs     []leg    `json:"legs"`
}

type geometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

type leg struct {
	Steps []step `json:"steps"`
}

type step struct {
	Distance float64  `json:"distance"` // meters
	Maneuver maneuver `json:"maneuver"`
}

type maneuver struct {
	Instruction string `json:"instruction"`
}
