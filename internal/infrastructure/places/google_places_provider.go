package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"onthego/internal/domain/model"
)

const googlePlacesBaseURL = "https://maps.googleapis.com/maps/api/place"

// GooglePlacesProvider talks to the Google Places API for nearby and text
// search. Any failure propagates so the caller can fall back to demo data.
type GooglePlacesProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGooglePlacesProvider creates a provider with the given API key.
func NewGooglePlacesProvider(apiKey string) *GooglePlacesProvider {
	return &GooglePlacesProvider{
		apiKey:     apiKey,
		baseURL:    googlePlacesBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the provider.
func (g *GooglePlacesProvider) Name() string { return "google" }

// Nearby fetches venues around the center via the Nearby Search API.
func (g *GooglePlacesProvider) Nearby(ctx context.Context, center model.Location, radiusMeters, maxResults int, includedTypes []string) ([]model.RawPlace, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", center.Latitude, center.Longitude))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	if len(includedTypes) > 0 {
		params.Set("type", includedTypes[0])
		if len(includedTypes) > 1 {
			params.Set("keyword", strings.Join(includedTypes[1:], " "))
		}
	}
	params.Set("key", g.apiKey)

	results, err := g.do(ctx, g.baseURL+"/nearbysearch/json?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// TextSearch looks venues up by free text, biased to a location.
func (g *GooglePlacesProvider) TextSearch(ctx context.Context, query string, bias model.Location) ([]model.RawPlace, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("location", fmt.Sprintf("%f,%f", bias.Latitude, bias.Longitude))
	params.Set("radius", "20000")
	params.Set("key", g.apiKey)

	return g.do(ctx, g.baseURL+"/textsearch/json?"+params.Encode())
}

func (g *GooglePlacesProvider) do(ctx context.Context, reqURL string) ([]model.RawPlace, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("google places: no API key configured")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build places request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API returned status %s", resp.Status)
	}

	var apiResp googlePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}
	if apiResp.Status != "OK" && apiResp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places API error: %s", apiResp.Status)
	}

	return parseResults(apiResp.Results), nil
}

// parseResults converts API results into the provider-neutral raw shape.
// Entries without a name or coordinates are skipped.
func parseResults(results []googlePlacesResult) []model.RawPlace {
	out := make([]model.RawPlace, 0, len(results))
	for _, r := range results {
		if r.Name == "" {
			continue
		}
		lat := r.Geometry.Location.Lat
		lng := r.Geometry.Location.Lng
		if lat == 0 && lng == 0 {
			continue
		}

		raw := model.RawPlace{
			ID:               r.PlaceID,
			Name:             r.Name,
			Latitude:         &lat,
			Longitude:        &lng,
			CategoryTitles:   typesToTitles(r.Types),
			Rating:           r.Rating,
			ReviewCount:      r.UserRatingsTotal,
			FormattedAddress: firstNonEmpty(r.FormattedAddress, r.Vicinity),
			Phone:            r.FormattedPhoneNumber,
			Website:          r.Website,
		}
		if r.PriceLevel != nil {
			raw.PriceLevel = r.PriceLevel
		}
		if r.OpeningHours != nil {
			open := r.OpeningHours.OpenNow
			raw.OpenNow = &open
		}
		out = append(out, raw)
	}
	return out
}

// typesToTitles turns Google type slugs into display titles, dropping the
// generic ones that say nothing about cuisine.
func typesToTitles(types []string) []string {
	skip := map[string]bool{
		"point_of_interest": true, "establishment": true, "food": true, "store": true,
	}
	titles := make([]string, 0, len(types))
	for _, t := range types {
		if skip[t] {
			continue
		}
		titles = append(titles, titleCase(strings.ReplaceAll(t, "_", " ")))
	}
	return titles
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Google Places API response shapes.

type googlePlacesResponse struct {
	Results []googlePlacesResult `json:"results"`
	Status  string               `json:"status"`
}

type googlePlacesResult struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Types    []string `json:"types"`
	Vicinity string   `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	OpeningHours *struct {
		OpenNow bool `json:"open_now"`
	} `json:"opening_hours,omitempty"`
	Rating               float64 `json:"rating,omitempty"`
	UserRatingsTotal     int     `json:"user_ratings_total,omitempty"`
	PriceLevel           *int    `json:"price_level,omitempty"`
	FormattedAddress     string  `json:"formatted_address,omitempty"`
	FormattedPhoneNumber string  `json:"formatted_phone_number,omitempty"`
	Website              string  `json:"website,omitempty"`
}
