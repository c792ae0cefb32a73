package repository

import (
	"context"

	"onthego/internal/domain/model"
)

// RouteLeg is one computed leg for a single travel mode.
type RouteLeg struct {
	DurationSec    int
	DistanceMeters float64
}

// RouteLegSet is a provider's answer for both travel modes of one origin pair.
type RouteLegSet struct {
	Drive RouteLeg
	Walk  RouteLeg
}

// RoutingProvider computes drive and walk legs between two points. May be
// unavailable; the resolver treats any error as a signal to try the next tier.
type RoutingProvider interface {
	ComputeRoutes(ctx context.Context, origin, destination model.LatLng) (*RouteLegSet, error)
	Name() string
}
