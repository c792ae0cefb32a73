package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"onthego/internal/domain/geo"
	"onthego/internal/domain/model"
	"onthego/internal/domain/repository"
)

// DefaultOSRMBaseURL is the public demo server.
const DefaultOSRMBaseURL = "https://router.project-osrm.org"

// OSRMProvider is the secondary routing tier, querying the public OSRM server
// with one request per travel profile. Best effort: the demo server's walking
// profile is flaky, so a failed walk query is estimated from drive distance.
type OSRMProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewOSRMProvider creates a provider against the given base URL (empty means
// the public demo server).
func NewOSRMProvider(baseURL string) *OSRMProvider {
	if baseURL == "" {
		baseURL = DefaultOSRMBaseURL
	}
	return &OSRMProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the provider.
func (o *OSRMProvider) Name() string { return "osrm" }

// ComputeRoutes queries drive and walk profiles independently. Drive is
// required; walk falls back to an estimate from the drive distance.
func (o *OSRMProvider) ComputeRoutes(ctx context.Context, origin, destination model.LatLng) (*repository.RouteLegSet, error) {
	drive, err := o.route(ctx, "driving", origin, destination)
	if err != nil {
		return nil, fmt.Errorf("driving profile: %w", err)
	}

	legs := &repository.RouteLegSet{Drive: *drive}
	walk, err := o.route(ctx, "walking", origin, destination)
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

func (o *OSRMProvider) route(ctx context.Context, profile string, origin, destination model.LatLng) (*repository.RouteLeg, error) {
	reqURL := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=false&alternatives=false&steps=false",
		o.baseURL, profile, origin.Lng, origin.Lat, destination.Lng, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build OSRM request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OSRM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OSRM returned status %s", resp.Status)
	}

	var apiResp osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode OSRM response: %w", err)
	}
	if apiResp.Code != "Ok" || len(apiResp.Routes) == 0 {
		return nil, fmt.Errorf("OSRM returned no route (code %q)", apiResp.Code)
	}

	first := apiResp.Routes[0]
	return &repository.RouteLeg{
		DurationSec:    int(math.Round(first.Duration)),
		DistanceMeters: first.Distance,
	}, nil
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Duration float64 `json:"duration"`
		Distance float64 `json:"distance"`
	} `json:"routes"`
}
