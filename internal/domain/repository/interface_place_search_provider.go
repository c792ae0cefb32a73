package repository

import (
	"context"

	"onthego/internal/domain/model"
)

// PlaceSearchProvider fetches raw venue payloads around a center. Failures are
// expected; callers fall back to the demo generator.
type PlaceSearchProvider interface {
	// Nearby returns venues around the center. includedTypes narrows the
	// provider's category universe (e.g. "restaurant", "bar").
	Nearby(ctx context.Context, center model.Location, radiusMeters, maxResults int, includedTypes []string) ([]model.RawPlace, error)

	// TextSearch looks up venues (hotels, lodging) by free text, biased to a location.
	TextSearch(ctx context.Context, query string, bias model.Location) ([]model.RawPlace, error)

	// Name identifies the provider for record id namespacing and logging.
	Name() string
}
