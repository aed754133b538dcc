package locate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/timetabled/timetabled/internal/models"
)

// Locator yields the user's current position on demand. Each request stands
// alone; results are never cached or persisted.
type Locator interface {
	Locate(ctx context.Context) (models.Coordinate, error)
}

const defaultEndpoint = "https://ipapi.co/json/"

// IPLocator estimates the position from the caller's public IP address. It is
// the terminal's stand-in for a device geolocation service: a single-shot
// request that either yields a coordinate or a failure the caller surfaces to
// the user.
type IPLocator struct {
	HTTP     *http.Client
	Endpoint string
}

func NewIPLocator(endpoint string) *IPLocator {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &IPLocator{
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		Endpoint: endpoint,
	}
}

type ipResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     bool    `json:"error"`
	Reason    string  `json:"reason"`
}

func (l *IPLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Endpoint, nil)
	if err != nil {
		return models.Coordinate{}, err
	}

	resp, err := l.HTTP.Do(req)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("location lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, fmt.Errorf("location lookup rejected: status %d", resp.StatusCode)
	}

	var decoded ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to decode location response: %w", err)
	}
	if decoded.Error {
		return models.Coordinate{}, fmt.Errorf("location unavailable: %s", decoded.Reason)
	}

	return models.Coordinate{Latitude: decoded.Latitude, Longitude: decoded.Longitude}, nil
}

// Static always reports a fixed coordinate. Used when the config pins a home
// location instead of querying a lookup service.
type Static struct {
	Coord models.Coordinate
}

func (s Static) Locate(ctx context.Context) (models.Coordinate, error) {
	return s.Coord, nil
}
