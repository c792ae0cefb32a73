package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"onthego/internal/domain/geo"
	"onthego/internal/domain/model"
	"onthego/internal/domain/repository"
)

// ProviderEstimate marks route times derived from the geometric fallback.
const ProviderEstimate = "estimate"

// RouteTimeResolver resolves walk/drive durations with a three-tier fallback:
// the primary routing provider, then the secondary public one, then a pure
// geometric estimate that always succeeds. Results are memoized for the
// session keyed by rounded coordinate pairs; the working set is bounded by the
// venues on screen, so there is no eviction.
type RouteTimeResolver struct {
	primary   repository.RoutingProvider
	secondary repository.RoutingProvider

	mu    sync.Mutex
	cache map[string]*model.RouteTimes
}

// NewRouteTimeResolver creates a resolver. Either provider may be nil, in
// which case its tier is skipped.
func NewRouteTimeResolver(primary, secondary repository.RoutingProvider) *RouteTimeResolver {
	return &RouteTimeResolver{
		primary:   primary,
		secondary: secondary,
		cache:     make(map[string]*model.RouteTimes),
	}
}

// GetTimes resolves both travel modes for the pair. Never fails: each tier's
// error is swallowed locally and tier three is total.
func (r *RouteTimeResolver) GetTimes(ctx context.Context, origin, destination model.LatLng) *model.RouteTimes {
	key := cacheKey(origin, destination)

	r.mu.Lock()
	if cached, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	times := r.resolve(ctx, origin, destination)

	r.mu.Lock()
	// First resolution wins; a concurrent resolve for the same key keeps the
	// cached value so the pair stays immutable for the session.
	if cached, ok := r.cache[key]; ok {
		times = cached
	} else {
		r.cache[key] = times
	}
	r.mu.Unlock()

	return times
}

// Invalidate drops all cached resolutions.
func (r *RouteTimeResolver) Invalidate() {
	r.mu.Lock()
	r.cache = make(map[string]*model.RouteTimes)
	r.mu.Unlock()
}

func (r *RouteTimeResolver) resolve(ctx context.Context, origin, destination model.LatLng) *model.RouteTimes {
	for _, provider := range []repository.RoutingProvider{r.primary, r.secondary} {
		if provider == nil {
			continue
		}
		legs, err := provider.ComputeRoutes(ctx, origin, destination)
		if err != nil {
			log.Printf("route provider %s failed, falling back: %v", provider.Name(), err)
			continue
		}
		return &model.RouteTimes{
			WalkSeconds:  legs.Walk.DurationSec,
			DriveSeconds: legs.Drive.DurationSec,
			WalkMeters:   legs.Walk.DistanceMeters,
			DriveMeters:  legs.Drive.DistanceMeters,
			Provider:     provider.Name(),
		}
	}
	return Estimate(origin, destination)
}

// Estimate derives route times from the haversine distance alone. Total: it
// succeeds for any pair of finite coordinates.
func Estimate(origin, destination model.LatLng) *model.RouteTimes {
	meters := geo.DistanceMeters(origin.Lat, origin.Lng, destination.Lat, destination.Lng)
	return &model.RouteTimes{
		WalkSeconds:  int(math.Round(meters / geo.WalkSpeedMPS)),
		DriveSeconds: int(math.Round(meters / geo.DriveSpeedMPS)),
		WalkMeters:   meters,
		DriveMeters:  meters,
		Provider:     ProviderEstimate,
	}
}

// cacheKey rounds both endpoints to 5 decimal places (~1.1m) and is
// order-sensitive.
func cacheKey(origin, destination model.LatLng) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f", origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}
