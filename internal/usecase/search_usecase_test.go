package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onthego/internal/application"
	"onthego/internal/domain/model"
	"onthego/internal/domain/repository"
	"onthego/internal/domain/service"
	"onthego/internal/infrastructure/places"
	"onthego/internal/infrastructure/store"
)

// stubProvider answers with a fixed result set, optionally failing. When gate
// is set, the first Nearby call blocks on it, simulating a slow in-flight
// request; later calls pass through.
type stubProvider struct {
	name  string
	raws  []model.RawPlace
	err   error
	gate  chan struct{}
	calls atomic.Int32
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Nearby(ctx context.Context, _ model.Location, _, _ int, _ []string) ([]model.RawPlace, error) {
	if s.gate != nil && s.calls.Add(1) == 1 {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.raws, nil
}

func (s *stubProvider) TextSearch(_ context.Context, _ string, _ model.Location) ([]model.RawPlace, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.raws, nil
}

func stubPlace(id, name string, lat, lng float64) model.RawPlace {
	return model.RawPlace{
		ID: id, Name: name,
		Latitude: &lat, Longitude: &lng,
		Rating: 4.2, ReviewCount: 150, Price: "$$",
	}
}

func newTestSearchUseCase(t *testing.T, provider *stubProvider) (RestaurantSearchUseCase, *application.UserStateService) {
	t.Helper()
	kv := store.NewMemoryStore()
	userState := application.NewUserStateService(kv)
	plans := application.NewPlanStore(kv)

	var placeProvider repository.PlaceSearchProvider
	if provider != nil {
		placeProvider = provider
	}
	return NewRestaurantSearchUseCase(placeProvider, places.NewDemoProvider(), service.NewDefaultScorer(), userState, plans, 8047, 20), userState
}

func sfContext() model.SearchContext {
	return model.SearchContext{
		Latitude: 37.7749, Longitude: -122.4194,
		Label: "San Francisco", SourceKind: model.SourceGPS,
	}
}

func TestSetCenterRejectsInvalidContext(t *testing.T) {
	uc, _ := newTestSearchUseCase(t, nil)

	_, err := uc.SetCenter(context.Background(), model.SearchContext{Latitude: 95, Longitude: 0, SourceKind: model.SourceGPS})
	assert.Error(t, err)

	_, err = uc.SetCenter(context.Background(), model.SearchContext{Latitude: 1, Longitude: 2, SourceKind: "teleport"})
	assert.Error(t, err)

	assert.False(t, uc.HasCenter())
}

func TestSetCenterUsesProviderResults(t *testing.T) {
	provider := &stubProvider{name: "google", raws: []model.RawPlace{
		stubPlace("p1", "Provider Bistro", 37.776, -122.418),
	}}
	uc, _ := newTestSearchUseCase(t, provider)

	results, err := uc.SetCenter(context.Background(), sfContext())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "google:p1", results[0].ID)
	assert.Positive(t, results[0].SuitabilityScore)
	require.NotNil(t, results[0].DistanceMeters)
	assert.True(t, uc.HasCenter())
}

func TestSetCenterFallsBackToDemoData(t *testing.T) {
	provider := &stubProvider{name: "google", err: errors.New("quota exceeded")}
	uc, _ := newTestSearchUseCase(t, provider)

	results, err := uc.SetCenter(context.Background(), sfContext())
	require.NoError(t, err)
	assert.NotEmpty(t, results)
	for _, r := range results {
		assert.Contains(t, r.ID, "demo:")
	}
}

func TestSetCenterDiscardsStaleResponse(t *testing.T) {
	gate := make(chan struct{})
	provider := &stubProvider{name: "google", gate: gate, raws: []model.RawPlace{
		stubPlace("p1", "Shared Bistro", 37.776, -122.418),
	}}
	uc, _ := newTestSearchUseCase(t, provider)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := uc.SetCenter(context.Background(), model.SearchContext{
			Latitude: 40.71, Longitude: -74.00, Label: "New York", SourceKind: model.SourceTrip,
		})
		assert.NoError(t, err)
	}()

	// Let the New York fetch get in flight, then supersede it.
	time.Sleep(20 * time.Millisecond)
	_, err := uc.SetCenter(context.Background(), sfContext())
	require.NoError(t, err)

	// Release the stale fetch; its result set must not replace the newer one.
	close(gate)
	<-done

	_, ctx := uc.Results()
	require.NotNil(t, ctx)
	assert.Equal(t, "San Francisco", ctx.Label)
}

func TestQueryFiltersCurrentResults(t *testing.T) {
	uc, _ := newTestSearchUseCase(t, nil)
	_, err := uc.SetCenter(context.Background(), sfContext())
	require.NoError(t, err)

	all := uc.Query(service.Criteria{})
	filtered := uc.Query(service.Criteria{Price: "$$$$"})
	assert.NotEmpty(t, all)
	assert.Less(t, len(filtered), len(all))
	for _, r := range filtered {
		assert.Equal(t, "$$$$", r.Price)
	}
}

func TestFindByID(t *testing.T) {
	uc, _ := newTestSearchUseCase(t, nil)
	_, err := uc.SetCenter(context.Background(), sfContext())
	require.NoError(t, err)

	results, _ := uc.Results()
	require.NotEmpty(t, results)
	found := uc.FindByID(results[0].ID)
	require.NotNil(t, found)
	assert.Equal(t, results[0].Name, found.Name)

	assert.Nil(t, uc.FindByID("nope"))
}

func TestSetCenterAppliesOverlay(t *testing.T) {
	uc, userState := newTestSearchUseCase(t, nil)

	// Note and pin recorded before the fetch must surface on the results.
	require.NoError(t, userState.SetNote("demo:demo-1", "window table"))
	require.NoError(t, userState.SetPinned("demo:demo-1", true))

	results, err := uc.SetCenter(context.Background(), sfContext())
	require.NoError(t, err)

	var target *model.Restaurant
	for i := range results {
		if results[i].ID == "demo:demo-1" {
			target = &results[i]
		}
	}
	require.NotNil(t, target)
	assert.Equal(t, "window table", target.Note)
	assert.True(t, target.Shortlisted)
}

func TestSearchHotels(t *testing.T) {
	uc, _ := newTestSearchUseCase(t, nil)

	_, err := uc.SearchHotels(context.Background(), "")
	assert.Error(t, err)

	hotels, err := uc.SearchHotels(context.Background(), "marriott union square")
	require.NoError(t, err)
	assert.Len(t, hotels, 3)
	for _, h := range hotels {
		assert.True(t, h.Coordinates.IsValid())
	}
}

func TestTypeaheadHotelsDebounces(t *testing.T) {
	uc, _ := newTestSearchUseCase(t, nil)

	delivered := make(chan []model.Restaurant, 2)
	deliver := func(results []model.Restaurant) { delivered <- results }

	uc.TypeaheadHotels("hil", deliver)
	uc.TypeaheadHotels("hilton", deliver)

	select {
	case results := <-delivered:
		assert.NotEmpty(t, results)
	case <-time.After(3 * time.Second):
		t.Fatal("debounced delivery never arrived")
	}

	select {
	case <-delivered:
		t.Fatal("superseded keystroke should not deliver")
	case <-time.After(400 * time.Millisecond):
	}
}
