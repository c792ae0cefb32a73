package places

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onthego/internal/domain/model"
)

var nyc = model.Location{Latitude: 40.7128, Longitude: -74.0060}

func TestNearbyScattersAroundCenter(t *testing.T) {
	p := NewDemoProvider()

	raws, err := p.Nearby(context.Background(), nyc, 8047, 0, nil)
	require.NoError(t, err)
	assert.Len(t, raws, 14)

	for _, raw := range raws {
		require.NotNil(t, raw.Latitude)
		require.NotNil(t, raw.Longitude)
		assert.LessOrEqual(t, math.Abs(*raw.Latitude-nyc.Latitude), 0.01, raw.Name)
		assert.LessOrEqual(t, math.Abs(*raw.Longitude-nyc.Longitude), 0.01, raw.Name)
	}
}

func TestNearbyHonorsMaxResults(t *testing.T) {
	p := NewDemoProvider()
	raws, err := p.Nearby(context.Background(), nyc, 8047, 5, nil)
	require.NoError(t, err)
	assert.Len(t, raws, 5)
}

func TestNearbyIDsStableAcrossCalls(t *testing.T) {
	p := NewDemoProvider()

	first, err := p.Nearby(context.Background(), nyc, 8047, 0, nil)
	require.NoError(t, err)
	second, err := p.Nearby(context.Background(), model.Location{Latitude: 37.77, Longitude: -122.41}, 8047, 0, nil)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestTextSearchMatchesSeed(t *testing.T) {
	p := NewDemoProvider()

	raws, err := p.TextSearch(context.Background(), "golden", nyc)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "The Golden Spoon", raws[0].Name)

	byCategory, err := p.TextSearch(context.Background(), "brewery", nyc)
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)
}

func TestTextSearchFabricatesHotels(t *testing.T) {
	p := NewDemoProvider()

	raws, err := p.TextSearch(context.Background(), "hilton midtown", nyc)
	require.NoError(t, err)
	require.Len(t, raws, 3)
	for _, raw := range raws {
		assert.Contains(t, raw.CategoryTitles, "Hotel")
		assert.Contains(t, raw.Name, "Hilton Midtown")
		require.NotNil(t, raw.Latitude)
	}
}

func TestTextSearchEmptyQuery(t *testing.T) {
	p := NewDemoProvider()
	raws, err := p.TextSearch(context.Background(), "   ", nyc)
	require.NoError(t, err)
	assert.Empty(t, raws)
}
