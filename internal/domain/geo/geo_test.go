package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"onthego/internal/domain/model"
)

func TestDistanceMeters(t *testing.T) {
	t.Run("identical points are exactly zero", func(t *testing.T) {
		assert.Zero(t, DistanceMeters(37.7749, -122.4194, 37.7749, -122.4194))
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := DistanceMeters(37.7749, -122.4194, 34.0522, -118.2437)
		ba := DistanceMeters(34.0522, -118.2437, 37.7749, -122.4194)
		assert.Equal(t, ab, ba)
	})

	t.Run("SF to LA is about 559 km", func(t *testing.T) {
		d := DistanceMeters(37.7749, -122.4194, 34.0522, -118.2437)
		assert.InDelta(t, 559000, d, 5000)
	})

	t.Run("short hop is about a kilometer", func(t *testing.T) {
		// ~0.009 degrees of latitude is ~1 km.
		d := DistanceMeters(37.7749, -122.4194, 37.7839, -122.4194)
		assert.InDelta(t, 1000, d, 15)
	})
}

func TestDistance(t *testing.T) {
	a := model.Location{Latitude: 37.7749, Longitude: -122.4194}
	b := model.Location{Latitude: 37.7849, Longitude: -122.4094}
	assert.Equal(t, DistanceMeters(a.Latitude, a.Longitude, b.Latitude, b.Longitude), Distance(a, b))
}

func TestPointConversion(t *testing.T) {
	l := model.Location{Latitude: 37.7749, Longitude: -122.4194}
	p := ToPoint(l)
	assert.Equal(t, -122.4194, p.Lon())
	assert.Equal(t, 37.7749, p.Lat())
	assert.Equal(t, l, FromPoint(p))
}

func TestBoundAround(t *testing.T) {
	b := BoundAround(0.01,
		model.Location{Latitude: 37.0, Longitude: -122.0},
		model.Location{Latitude: 38.0, Longitude: -121.0},
	)
	assert.True(t, b.Contains(ToPoint(model.Location{Latitude: 37.5, Longitude: -121.5})))
	assert.True(t, b.Contains(ToPoint(model.Location{Latitude: 38.005, Longitude: -120.995})))
	assert.False(t, b.Contains(ToPoint(model.Location{Latitude: 39.0, Longitude: -121.5})))
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{50, "164 ft"},
		{100, "328 ft"},
		{160.9344, "0.1 mi"},
		{1609.344, "1.0 mi"},
		{2414.016, "1.5 mi"},
		{16093.44, "10.0 mi"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDistance(tt.meters), "meters=%v", tt.meters)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "", FormatDuration(0))
	assert.Equal(t, "", FormatDuration(-30))
	assert.Equal(t, "1 min", FormatDuration(10))
	assert.Equal(t, "12 min", FormatDuration(720))
	assert.Equal(t, "1h 5m", FormatDuration(3900))
}

func TestFormatRouteTimes(t *testing.T) {
	assert.Equal(t, "", FormatRouteTimes(nil))

	rt := &model.RouteTimes{WalkSeconds: 720, DriveSeconds: 240}
	assert.Equal(t, "🚶 12 min · 🚗 4 min", FormatRouteTimes(rt))

	walkOnly := &model.RouteTimes{WalkSeconds: 300}
	assert.Equal(t, "🚶 5 min", FormatRouteTimes(walkOnly))

	driveOnly := &model.RouteTimes{DriveSeconds: 300}
	assert.Equal(t, "🚗 5 min", FormatRouteTimes(driveOnly))
}
