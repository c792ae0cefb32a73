package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"onthego/internal/application"
	"onthego/internal/domain/model"
	"onthego/internal/domain/repository"
	"onthego/internal/domain/service"
)

// DefaultCenter is applied on first entry into the local view when nothing
// has established a search center yet (downtown San Francisco).
var DefaultCenter = model.SearchContext{
	Latitude:   37.7749,
	Longitude:  -122.4194,
	Label:      "San Francisco",
	SourceKind: model.SourceGPS,
}

// RestaurantSearchUseCase orchestrates the fetch → normalize → score →
// overlay pipeline and answers filtered views over the current result set.
type RestaurantSearchUseCase interface {
	// SetCenter replaces the search context and refetches. A newer SetCenter
	// racing an older in-flight one wins: the stale result set is discarded.
	SetCenter(ctx context.Context, sc model.SearchContext) ([]model.Restaurant, error)

	// Results returns the current annotated result set and its context.
	Results() ([]model.Restaurant, *model.SearchContext)

	// HasCenter reports whether a search center is established.
	HasCenter() bool

	// Query applies the filter/sort chain over the current result set. The
	// returned order is the single source of truth for list and markers.
	Query(criteria service.Criteria) []model.Restaurant

	// FindByID looks a venue up in the current result set.
	FindByID(id string) *model.Restaurant

	// SearchHotels does a synchronous lodging text search with demo fallback.
	SearchHotels(ctx context.Context, query string) ([]model.Restaurant, error)

	// TypeaheadHotels debounces search-as-you-type: deliver runs only if no
	// newer keystroke supersedes this one within the quiet window.
	TypeaheadHotels(query string, deliver func([]model.Restaurant))
}

type restaurantSearchUseCase struct {
	provider   repository.PlaceSearchProvider // may be nil (demo-only setup)
	demo       repository.PlaceSearchProvider
	normalizer *service.PlaceNormalizer
	scorer     *service.SuitabilityScorer
	engine     *service.FilterSortEngine
	userState  *application.UserStateService
	plans      *application.PlanStore

	radiusMeters int
	maxResults   int

	generation atomic.Uint64
	debouncer  *service.Debouncer

	mu      sync.Mutex
	current []model.Restaurant
	center  *model.SearchContext
}

// NewRestaurantSearchUseCase wires the pipeline. provider may be nil to force
// demo data; demo must not be nil.
func NewRestaurantSearchUseCase(
	provider repository.PlaceSearchProvider,
	demo repository.PlaceSearchProvider,
	scorer *service.SuitabilityScorer,
	userState *application.UserStateService,
	plans *application.PlanStore,
	radiusMeters, maxResults int,
) RestaurantSearchUseCase {
	return &restaurantSearchUseCase{
		provider:     provider,
		demo:         demo,
		normalizer:   service.NewPlaceNormalizer(),
		scorer:       scorer,
		engine:       service.NewFilterSortEngine(scorer),
		userState:    userState,
		plans:        plans,
		radiusMeters: radiusMeters,
		maxResults:   maxResults,
		debouncer:    service.NewDebouncer(250 * time.Millisecond),
	}
}

func (u *restaurantSearchUseCase) SetCenter(ctx context.Context, sc model.SearchContext) ([]model.Restaurant, error) {
	if !sc.IsValid() {
		return nil, fmt.Errorf("invalid search context: lat=%v lng=%v source=%q", sc.Latitude, sc.Longitude, sc.SourceKind)
	}

	// Tag this fetch; a later SetCenter bumps the generation and this
	// response becomes stale.
	gen := u.generation.Add(1)

	center := sc.Center()
	raws, providerName := u.fetchNearby(ctx, center)

	restaurants := u.normalizer.NormalizeAll(raws, providerName, &center)
	for i := range restaurants {
		restaurants[i].SuitabilityScore = u.scorer.Score(&restaurants[i])
	}
	if err := u.userState.ApplyOverlay(restaurants); err != nil {
		log.Printf("overlay merge failed, continuing without: %v", err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if gen != u.generation.Load() {
		// A newer center was set while this fetch was in flight.
		log.Printf("discarding stale result set for %q", sc.Label)
		return restaurants, nil
	}
	u.current = restaurants
	u.center = &sc
	return restaurants, nil
}

// fetchNearby asks the configured provider, falling back to demo data on any
// failure or empty result. The fallback never fails.
func (u *restaurantSearchUseCase) fetchNearby(ctx context.Context, center model.Location) ([]model.RawPlace, string) {
	includedTypes := []string{"restaurant", "bar"}
	if u.provider != nil {
		raws, err := u.provider.Nearby(ctx, center, u.radiusMeters, u.maxResults, includedTypes)
		if err == nil && len(raws) > 0 {
			return raws, u.provider.Name()
		}
		if err != nil {
			log.Printf("place provider %s failed, using demo data: %v", u.provider.Name(), err)
		}
	}
	raws, _ := u.demo.Nearby(ctx, center, u.radiusMeters, u.maxResults, includedTypes)
	return raws, u.demo.Name()
}

func (u *restaurantSearchUseCase) Results() ([]model.Restaurant, *model.SearchContext) {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]model.Restaurant, len(u.current))
	copy(out, u.current)
	return out, u.center
}

func (u *restaurantSearchUseCase) HasCenter() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.center != nil
}

func (u *restaurantSearchUseCase) Query(criteria service.Criteria) []model.Restaurant {
	all, _ := u.Results()
	plan := u.plans.Get()
	return u.engine.Apply(all, criteria, &plan)
}

func (u *restaurantSearchUseCase) FindByID(id string) *model.Restaurant {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.current {
		if u.current[i].ID == id {
			r := u.current[i]
			return &r
		}
	}
	return nil
}

func (u *restaurantSearchUseCase) SearchHotels(ctx context.Context, query string) ([]model.Restaurant, error) {
	if query == "" {
		return nil, fmt.Errorf("empty hotel query")
	}

	bias := DefaultCenter.Center()
	u.mu.Lock()
	if u.center != nil {
		bias = u.center.Center()
	}
	u.mu.Unlock()

	var raws []model.RawPlace
	providerName := u.demo.Name()
	if u.provider != nil {
		fetched, err := u.provider.TextSearch(ctx, query, bias)
		if err == nil && len(fetched) > 0 {
			raws, providerName = fetched, u.provider.Name()
		} else if err != nil {
			log.Printf("hotel search via %s failed, using demo data: %v", u.provider.Name(), err)
		}
	}
	if raws == nil {
		raws, _ = u.demo.TextSearch(ctx, query, bias)
	}

	return u.normalizer.NormalizeAll(raws, providerName, &bias), nil
}

func (u *restaurantSearchUseCase) TypeaheadHotels(query string, deliver func([]model.Restaurant)) {
	u.debouncer.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		results, err := u.SearchHotels(ctx, query)
		if err != nil {
			log.Printf("typeahead hotel search failed: %v", err)
			return
		}
		deliver(results)
	})
}
