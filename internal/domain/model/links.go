package model

import (
	"net/url"
	"strconv"
	"strings"
)

// ReservationLinks builds search URLs on the major reservation platforms.
func (r *Restaurant) ReservationLinks() map[string]string {
	name := url.QueryEscape(r.Name)
	city := strings.ToLower(url.QueryEscape(r.Address.City))
	if city == "" {
		city = "sf"
	}
	return map[string]string{
		"opentable": "https://www.opentable.com/s?term=" + name,
		"resy":      "https://resy.com/cities/" + city + "?search=" + name,
	}
}

// DeliveryLinks builds search URLs on the major delivery platforms.
func (r *Restaurant) DeliveryLinks() map[string]string {
	name := url.QueryEscape(r.Name)
	return map[string]string{
		"ubereats": "https://www.ubereats.com/search?q=" + name,
		"doordash": "https://www.doordash.com/search/?query=" + name,
		"grubhub":  "https://www.grubhub.com/search?searchTerm=" + name,
	}
}

// SocialLinks builds social-media search URLs for the venue.
func (r *Restaurant) SocialLinks() map[string]string {
	parts := []string{r.Name}
	if r.Address.City != "" {
		parts = append(parts, r.Address.City)
	}
	if r.Address.State != "" {
		parts = append(parts, r.Address.State)
	}
	query := url.QueryEscape(strings.Join(parts, " "))
	tag := strings.ReplaceAll(url.QueryEscape(r.Name), "%20", "")
	return map[string]string{
		"instagram": "https://www.instagram.com/explore/tags/" + tag + "/",
		"facebook":  "https://www.facebook.com/search/top?q=" + query,
		"twitter":   "https://twitter.com/search?q=" + query,
	}
}

// DirectionsLink builds a Google Maps directions URL to the venue.
func (r *Restaurant) DirectionsLink() string {
	if !r.Coordinates.IsValid() {
		return ""
	}
	v := url.Values{}
	v.Set("api", "1")
	v.Set("destination", formatCoord(r.Coordinates.Latitude)+","+formatCoord(r.Coordinates.Longitude))
	return "https://www.google.com/maps/dir/?" + v.Encode()
}

// formatCoord renders a coordinate with enough precision for a map link.
func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
