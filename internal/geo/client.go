package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/timetabled/timetabled/internal/constants"
	"github.com/timetabled/timetabled/internal/logger"
	"github.com/timetabled/timetabled/internal/models"
)

const defaultBaseURL = "https://api.mapbox.com"

// Client talks to the geocoding and directions provider. Both the address
// search in the event editor and the standalone search command go through the
// same client, so the query shape and error handling live in exactly one
// place.
type Client struct {
	HTTP    *http.Client
	Token   string
	BaseURL string
}

func NewClient(token string) *Client {
	return &Client{
		HTTP:  http.DefaultClient,
		Token: token,
	}
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

// Search resolves free-text input into up to MaxSuggestions place candidates
// in provider ranking order. It fails softly: any network or decode problem
// is logged and an empty list returned, never a blocking error. An empty
// query short-circuits without a network call.
func (c *Client) Search(ctx context.Context, query string) []models.PlaceCandidate {
	if query == "" {
		return nil
	}

	u := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s&limit=%d",
		c.baseURL(), url.PathEscape(query), url.QueryEscape(c.Token), constants.MaxSuggestions)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		logger.Error("Failed to build geocoding request", "error", err)
		return nil
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		logger.Warn("Geocoding request failed", "query", query, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Geocoding request rejected", "query", query, "status", resp.StatusCode)
		return nil
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		logger.Warn("Failed to decode geocoding response", "query", query, "error", err)
		return nil
	}

	candidates := make([]models.PlaceCandidate, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		candidates = append(candidates, models.PlaceCandidate{
			ID:          f.ID,
			DisplayName: f.PlaceName,
			Coord: models.Coordinate{
				Longitude: f.Center[0],
				Latitude:  f.Center[1],
			},
		})
		if len(candidates) == constants.MaxSuggestions {
			break
		}
	}
	return candidates
}

// Route computes a driving route from origin to destination. The first route
// candidate wins; if the provider returns none, the result is nil with no
// error ("no route yet" rather than a failure).
func (c *Client) Route(ctx context.Context, origin, dest models.Coordinate) (*models.RouteResult, error) {
	u := fmt.Sprintf("%s/directions/v5/mapbox/driving/%s;%s?steps=true&geometries=geojson&access_token=%s",
		c.baseURL(), coordPair(origin), coordPair(dest), url.QueryEscape(c.Token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions request rejected: status %d", resp.StatusCode)
	}

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode directions response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return nil, nil
	}
	best := decoded.Routes[0]

	result := &models.RouteResult{
		ETAMinutes: int(math.Round(best.Duration / 60)),
		DistanceKm: best.Distance / 1000,
		Geometry:   best.Geometry.Coordinates,
	}
	for _, l := range best.Legs {
		for _, st := range l.Steps {
			result.Steps = append(result.Steps, models.RouteStep{
				Instruction: st.Maneuver.Instruction,
				Distance:    fmt.Sprintf("%.2f km", st.Distance/1000),
			})
		}
	}

	return result, nil
}

// coordPair renders a coordinate in the provider's longitude,latitude order.
func coordPair(c models.Coordinate) string {
	return strconv.FormatFloat(c.Longitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Latitude, 'f', -1, 64)
}
