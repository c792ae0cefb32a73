package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"onthego/internal/domain/geo"
	"onthego/internal/domain/model"
	"onthego/internal/domain/repository"
)

// stubRouter counts calls and either answers or always fails.
type stubRouter struct {
	name  string
	fail  bool
	calls int
	legs  repository.RouteLegSet
}

func (s *stubRouter) Name() string { return s.name }

func (s *stubRouter) ComputeRoutes(_ context.Context, _, _ model.LatLng) (*repository.RouteLegSet, error) {
	s.calls++
	if s.fail {
		return nil, errors.New("routing unavailable")
	}
	legs := s.legs
	return &legs, nil
}

var (
	testOrigin = model.LatLng{Lat: 37.7749, Lng: -122.4194}
	testDest   = model.LatLng{Lat: 37.7849, Lng: -122.4094}
)

func TestGetTimesPrimaryWins(t *testing.T) {
	primary := &stubRouter{name: "primary", legs: repository.RouteLegSet{
		Walk:  repository.RouteLeg{DurationSec: 700, DistanceMeters: 980},
		Drive: repository.RouteLeg{DurationSec: 180, DistanceMeters: 1400},
	}}
	secondary := &stubRouter{name: "secondary"}
	resolver := NewRouteTimeResolver(primary, secondary)

	times := resolver.GetTimes(context.Background(), testOrigin, testDest)
	assert.Equal(t, "primary", times.Provider)
	assert.Equal(t, 700, times.WalkSeconds)
	assert.Equal(t, 180, times.DriveSeconds)
	assert.Zero(t, secondary.calls)
}

func TestGetTimesFallsBackToSecondary(t *testing.T) {
	primary := &stubRouter{name: "primary", fail: true}
	secondary := &stubRouter{name: "secondary", legs: repository.RouteLegSet{
		Walk:  repository.RouteLeg{DurationSec: 750},
		Drive: repository.RouteLeg{DurationSec: 200},
	}}
	resolver := NewRouteTimeResolver(primary, secondary)

	times := resolver.GetTimes(context.Background(), testOrigin, testDest)
	assert.Equal(t, "secondary", times.Provider)
	assert.Equal(t, 1, primary.calls)
}

func TestGetTimesNeverFails(t *testing.T) {
	// Both tiers down: the geometric estimate still answers.
	resolver := NewRouteTimeResolver(&stubRouter{name: "a", fail: true}, &stubRouter{name: "b", fail: true})
	times := resolver.GetTimes(context.Background(), testOrigin, testDest)
	assert.Equal(t, ProviderEstimate, times.Provider)
	assert.Positive(t, times.WalkSeconds)
	assert.Positive(t, times.DriveSeconds)

	// Nil providers skip their tiers entirely.
	bare := NewRouteTimeResolver(nil, nil)
	times = bare.GetTimes(context.Background(), testOrigin, testDest)
	assert.Equal(t, ProviderEstimate, times.Provider)
}

func TestEstimateSpeeds(t *testing.T) {
	times := Estimate(testOrigin, testDest)
	meters := geo.DistanceMeters(testOrigin.Lat, testOrigin.Lng, testDest.Lat, testDest.Lng)
	assert.Equal(t, int(math.Round(meters/geo.WalkSpeedMPS)), times.WalkSeconds)
	assert.Equal(t, int(math.Round(meters/geo.DriveSpeedMPS)), times.DriveSeconds)
	assert.Equal(t, meters, times.WalkMeters)
}

func TestGetTimesCaching(t *testing.T) {
	primary := &stubRouter{name: "primary", legs: repository.RouteLegSet{
		Walk: repository.RouteLeg{DurationSec: 700},
	}}
	resolver := NewRouteTimeResolver(primary, nil)

	first := resolver.GetTimes(context.Background(), testOrigin, testDest)
	second := resolver.GetTimes(context.Background(), testOrigin, testDest)
	assert.Same(t, first, second)
	assert.Equal(t, 1, primary.calls)

	// Sub-meter jitter rounds onto the same cache key.
	jittered := model.LatLng{Lat: testDest.Lat + 0.000001, Lng: testDest.Lng}
	assert.Same(t, first, resolver.GetTimes(context.Background(), testOrigin, jittered))
	assert.Equal(t, 1, primary.calls)

	// Direction matters: the reverse pair is its own entry.
	resolver.GetTimes(context.Background(), testDest, testOrigin)
	assert.Equal(t, 2, primary.calls)
}

func TestInvalidateDropsCache(t *testing.T) {
	primary := &stubRouter{name: "primary"}
	resolver := NewRouteTimeResolver(primary, nil)

	resolver.GetTimes(context.Background(), testOrigin, testDest)
	resolver.Invalidate()
	resolver.GetTimes(context.Background(), testOrigin, testDest)
	assert.Equal(t, 2, primary.calls)
}
