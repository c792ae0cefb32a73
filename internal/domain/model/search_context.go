package model

// SearchContext is the active center of interest. Replacing it invalidates all
// computed distances and triggers a fresh fetch.
type SearchContext struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Label      string  `json:"label"`
	SourceKind string  `json:"source_kind"`
}

// Center returns the context's coordinates as a Location.
func (s SearchContext) Center() Location {
	return Location{Latitude: s.Latitude, Longitude: s.Longitude}
}

// IsValid reports whether the context carries usable geometry and a known source.
func (s SearchContext) IsValid() bool {
	if !s.Center().IsValid() {
		return false
	}
	switch s.SourceKind {
	case SourceGPS, SourceTrip, SourceAddressSearch, SourceMapRecenter:
		return true
	}
	return false
}
