package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"onthego/internal/domain/geo"
	"onthego/internal/domain/model"
	"onthego/internal/domain/repository"
)

const googleRoutesURL = "https://routes.googleapis.com/directions/v2:computeRoutes"

// GoogleRoutesProvider is the primary routing tier, backed by the Google
// Routes API. One ComputeRoutes call issues both travel modes.
type GoogleRoutesProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleRoutesProvider creates a provider with the given API key.
func NewGoogleRoutesProvider(apiKey string) *GoogleRoutesProvider {
	return &GoogleRoutesProvider{
		apiKey:     apiKey,
		baseURL:    googleRoutesURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the provider.
func (g *GoogleRoutesProvider) Name() string { return "google" }

// ComputeRoutes fetches drive and walk legs. The drive leg is required; a
// failed walk query is estimated from the drive distance at walking speed.
func (g *GoogleRoutesProvider) ComputeRoutes(ctx context.Context, origin, destination model.LatLng) (*repository.RouteLegSet, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("google routes: no API key configured")
	}

	drive, err := g.computeLeg(ctx, origin, destination, "DRIVE")
	if err != nil {
		return nil, fmt.Errorf("drive leg: %w", err)
	}

	legs := &repository.RouteLegSet{Drive: *drive}
	walk, err := g.computeLeg(ctx, origin, destination, "WALK")
	if err != nil {
		legs.Walk = repository.RouteLeg{
			DurationSec:    int(math.Round(drive.DistanceMeters / geo.WalkSpeedMPS)),
			DistanceMeters: drive.DistanceMeters,
		}
	} else {
		legs.Walk = *walk
	}
	return legs, nil
}

func (g *GoogleRoutesProvider) computeLeg(ctx context.Context, origin, destination model.LatLng, mode string) (*repository.RouteLeg, error) {
	body := computeRoutesRequest{TravelMode: mode}
	body.Origin.Location.LatLng = latLngBody{origin.Lat, origin.Lng}
	body.Destination.Location.LatLng = latLngBody{destination.Lat, destination.Lng}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal routes request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build routes request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", g.apiKey)
	req.Header.Set("X-Goog-FieldMask", "routes.duration,routes.distanceMeters")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routes request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routes API returned status %s", resp.Status)
	}

	var apiResp computeRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode routes response: %w", err)
	}
	if len(apiResp.Routes) == 0 {
		return nil, fmt.Errorf("routes API returned no route")
	}

	first := apiResp.Routes[0]
	seconds, err := parseDuration(first.Duration)
	if err != nil {
		return nil, err
	}
	return &repository.RouteLeg{
		DurationSec:    seconds,
		DistanceMeters: float64(first.DistanceMeters),
	}, nil
}

// parseDuration parses the API's "123s" duration strings.
func parseDuration(s string) (int, error) {
	trimmed := strings.TrimSuffix(s, "s")
	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return int(math.Round(seconds)), nil
}

// Google Routes API request/response shapes.

type latLngBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type waypointBody struct {
	Location struct {
		LatLng latLngBody `json:"latLng"`
	} `json:"location"`
}

type computeRoutesRequest struct {
	Origin      waypointBody `json:"origin"`
	Destination waypointBody `json:"destination"`
	TravelMode  string       `json:"travelMode"`
}

type computeRoutesResponse struct {
	Routes []struct {
		Duration       string `json:"duration"`
		DistanceMeters int    `json:"distanceMeters"`
	} `json:"routes"`
}
