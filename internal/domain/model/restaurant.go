package model

import "math"

// LatLng is the compact coordinate pair used by routing and map plumbing.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is a validated latitude/longitude pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ToLatLng converts a Location into the routing coordinate shape.
func (l Location) ToLatLng() LatLng {
	return LatLng{Lat: l.Latitude, Lng: l.Longitude}
}

// IsValid reports whether the location is finite and within range.
func (l Location) IsValid() bool {
	if math.IsNaN(l.Latitude) || math.IsInf(l.Latitude, 0) {
		return false
	}
	if math.IsNaN(l.Longitude) || math.IsInf(l.Longitude, 0) {
		return false
	}
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

// Category is one provider-assigned category. Order is provider-relevance order.
type Category struct {
	Title string `json:"title"`
}

// Address is the parsed street address of a venue. Fields degrade to empty
// strings when the provider's formatted address cannot be parsed.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// RouteTimes holds resolved walking/driving durations for one origin pair.
// Immutable once resolved; the resolver caches them for the session.
type RouteTimes struct {
	WalkSeconds  int     `json:"walkSeconds"`
	DriveSeconds int     `json:"driveSeconds"`
	WalkMeters   float64 `json:"walkMeters"`
	DriveMeters  float64 `json:"driveMeters"`
	Provider     string  `json:"provider"`
}

// Restaurant is the canonical venue record every component downstream of the
// normalizer consumes. Provider payload shapes never leak past normalization.
type Restaurant struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Coordinates Location   `json:"coordinates"`
	Categories  []Category `json:"categories"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"review_count"`
	Price       string     `json:"price"`
	Tags        []string   `json:"tags"`
	Address     Address    `json:"address"`
	Phone       string     `json:"phone,omitempty"`
	Website     string     `json:"website,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`

	// OpenNow is tri-state: nil means the provider did not say.
	OpenNow    *bool `json:"open_now,omitempty"`
	Reservable bool  `json:"reservable"`
	Delivery   bool  `json:"delivery"`
	Takeout    bool  `json:"takeout"`
	DineIn     bool  `json:"dine_in"`

	// Venue signals used only for scoring.
	GoodForGroups   bool `json:"good_for_groups"`
	LiveMusic       bool `json:"live_music"`
	ServesCocktails bool `json:"serves_cocktails"`
	OutdoorSeating  bool `json:"outdoor_seating"`
	ServesCoffee    bool `json:"serves_coffee"`

	// DistanceMeters is relative to the search center active at normalization
	// time; nil when no center was set. Stale after the center changes.
	DistanceMeters *float64 `json:"distance_meters,omitempty"`

	// SuitabilityScore is derived from this record's own fields only.
	SuitabilityScore int `json:"suitability_score"`

	// RouteTimes is absent until lazily resolved.
	RouteTimes *RouteTimes `json:"route_times,omitempty"`

	// User overlay, merged from persisted state. Not part of provider payloads.
	Visited     bool   `json:"visited"`
	VisitDate   string `json:"visit_date,omitempty"`
	Note        string `json:"note,omitempty"`
	Shortlisted bool   `json:"shortlisted"`
}

// IsOpenNow reports whether the venue is known to be open right now.
// Both "closed" and "unknown" return false.
func (r *Restaurant) IsOpenNow() bool {
	return r.OpenNow != nil && *r.OpenNow
}

// CategoryTitles returns the category titles in provider order.
func (r *Restaurant) CategoryTitles() []string {
	titles := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		titles = append(titles, c.Title)
	}
	return titles
}

// HasTag reports whether the venue carries the given ambiance tag.
func (r *Restaurant) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// RawPlace is the provider-neutral intermediate shape the infrastructure
// adapters produce. Every field is optional; the normalizer supplies defaults.
type RawPlace struct {
	ID               string
	Name             string
	Latitude         *float64
	Longitude        *float64
	CategoryTitles   []string
	Rating           float64
	ReviewCount      int
	PriceLevel       *int   // provider ordinal (1..4), when that is what it speaks
	Price            string // "$"-style tier, when the provider gives it directly
	FormattedAddress string
	Street           string
	City             string
	State            string
	Zip              string
	Phone            string
	Website          string
	ImageURL         string
	OpenNow          *bool
	Reservable       bool
	Delivery         bool
	Takeout          bool
	DineIn           bool
	GoodForGroups    bool
	LiveMusic        bool
	ServesCocktails  bool
	OutdoorSeating   bool
	ServesCoffee     bool
	VisitDate        string
}

// ShortlistEntry is the persisted per-venue user state keyed by restaurant id.
// Entries outlive the current result set.
type ShortlistEntry struct {
	Pinned bool   `json:"pinned"`
	Note   string `json:"note,omitempty"`
}
