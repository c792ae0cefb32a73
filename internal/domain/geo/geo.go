package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"onthego/internal/domain/model"
)

// earthRadiusMeters is the spherical-earth mean radius.
const earthRadiusMeters = 6371000.0

// Average speeds used for geometric route-time estimates.
const (
	WalkSpeedMPS  = 1.4  // brisk city walk
	DriveSpeedMPS = 12.0 // ~27 mph with city traffic
)

// DistanceMeters returns the great-circle distance between two points using
// the haversine formula. Symmetric; zero for identical points.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Distance returns the haversine distance between two locations.
func Distance(a, b model.Location) float64 {
	return DistanceMeters(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// ToPoint converts a Location to an orb point (lon/lat order).
func ToPoint(l model.Location) orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// FromPoint converts an orb point back to a Location.
func FromPoint(p orb.Point) model.Location {
	return model.Location{Latitude: p.Lat(), Longitude: p.Lon()}
}

// BoundAround returns a padded bounding box covering the given locations,
// used to frame world-view markers and demo-data scatter.
func BoundAround(padding float64, locations ...model.Location) orb.Bound {
	var bound orb.Bound
	for i, l := range locations {
		p := ToPoint(l)
		if i == 0 {
			bound = orb.Bound{Min: p, Max: p}
			continue
		}
		bound = bound.Extend(p)
	}
	return bound.Pad(padding)
}

// FormatDistance renders a distance for display: miles with one decimal, or
// feet below a tenth of a mile.
func FormatDistance(meters float64) string {
	miles := meters / 1609.344
	if miles < 0.1 {
		feet := math.Round(meters * 3.28084)
		return fmt.Sprintf("%d ft", int(feet))
	}
	return fmt.Sprintf("%.1f mi", miles)
}

// FormatDuration renders a duration in seconds as "12 min" or "1h 5m".
// Non-positive durations render empty.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	minutes := int(math.Round(float64(seconds) / 60))
	if minutes < 1 {
		minutes = 1
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatRouteTimes renders the resolved pair as the map popup string.
func FormatRouteTimes(rt *model.RouteTimes) string {
	if rt == nil {
		return ""
	}
	walk := FormatDuration(rt.WalkSeconds)
	drive := FormatDuration(rt.DriveSeconds)
	switch {
	case walk != "" && drive != "":
		return "🚶 " + walk + " · 🚗 " + drive
	case walk != "":
		return "🚶 " + walk
	case drive != "":
		return "🚗 " + drive
	}
	return ""
}
