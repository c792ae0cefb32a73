package application

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"onthego/internal/domain/model"
	"onthego/internal/domain/repository"
)

const (
	keyTripHistory  = "trips_history"
	keyTripUpcoming = "trips_upcoming"
)

// TripsService serves the world-view and travel-log data: past stays with
// their dining history, and upcoming stays that become default search centers.
type TripsService struct {
	store repository.KeyValueStore
	mu    sync.Mutex
}

// NewTripsService creates the service; demo trips are seeded lazily on first read.
func NewTripsService(store repository.KeyValueStore) *TripsService {
	return &TripsService{store: store}
}

// History returns past trips, oldest booking last.
func (t *TripsService) History() ([]model.Trip, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(keyTripHistory, demoHistory)
}

// Upcoming returns booked future trips.
func (t *TripsService) Upcoming() ([]model.Trip, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(keyTripUpcoming, demoUpcoming)
}

// Find locates a trip by id across history and upcoming.
func (t *TripsService) Find(id string) (*model.Trip, error) {
	history, err := t.History()
	if err != nil {
		return nil, err
	}
	upcoming, err := t.Upcoming()
	if err != nil {
		return nil, err
	}
	for _, trip := range append(history, upcoming...) {
		if trip.ID == id {
			return &trip, nil
		}
	}
	return nil, nil
}

// AddUpcoming stores a new future trip, assigning an id when absent.
func (t *TripsService) AddUpcoming(trip model.Trip) (model.Trip, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	trips, err := t.load(keyTripUpcoming, demoUpcoming)
	if err != nil {
		return trip, err
	}
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	trips = append(trips, trip)
	if err := t.store.Set(keyTripUpcoming, trips); err != nil {
		return trip, fmt.Errorf("persist upcoming trips: %w", err)
	}
	return trip, nil
}

// load reads a trip list, seeding it with demo data on first access.
func (t *TripsService) load(key string, seed func() []model.Trip) ([]model.Trip, error) {
	var trips []model.Trip
	ok, err := t.store.Get(key, &trips)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if ok {
		return trips, nil
	}
	trips = seed()
	if err := t.store.Set(key, trips); err != nil {
		return nil, fmt.Errorf("seed %s: %w", key, err)
	}
	return trips, nil
}

// demoHistory mirrors a plausible recent business-travel record.
func demoHistory() []model.Trip {
	return []model.Trip{
		{
			ID: "trip-sf", City: "San Francisco", State: "CA", Country: "USA",
			Coordinates: model.Location{Latitude: 37.7856, Longitude: -122.4023},
			StartDate:   "2024-11-12", EndDate: "2024-11-16", Purpose: "Business",
			Hotel:              "The St. Regis San Francisco",
			RestaurantsVisited: []string{"demo-1", "demo-7"},
			DiningExpenses: []model.DiningExpense{
				{RestaurantID: "demo-1", Amount: 85.50, Date: "2024-11-13"},
				{RestaurantID: "demo-7", Amount: 215.00, Date: "2024-11-14"},
			},
		},
		{
			ID: "trip-nyc", City: "New York", State: "NY", Country: "USA",
			Coordinates: model.Location{Latitude: 40.7645, Longitude: -73.9744},
			StartDate:   "2024-10-20", EndDate: "2024-10-24", Purpose: "Business",
			Hotel:              "The Plaza Hotel",
			RestaurantsVisited: []string{"demo-2"},
			DiningExpenses: []model.DiningExpense{
				{RestaurantID: "demo-2", Amount: 142.75, Date: "2024-10-21"},
			},
		},
		{
			ID: "trip-chi", City: "Chicago", State: "IL", Country: "USA",
			Coordinates: model.Location{Latitude: 41.8887, Longitude: -87.6354},
			StartDate:   "2024-09-01", EndDate: "2024-09-06", Purpose: "Business",
			Hotel:              "The Langham Chicago",
			RestaurantsVisited: []string{"demo-6"},
			DiningExpenses: []model.DiningExpense{
				{RestaurantID: "demo-6", Amount: 178.25, Date: "2024-09-03"},
			},
		},
		{
			ID: "trip-mia", City: "Miami", State: "FL", Country: "USA",
			Coordinates: model.Location{Latitude: 25.8139, Longitude: -80.1229},
			StartDate:   "2025-01-08", EndDate: "2025-01-12", Purpose: "Business",
			Hotel:              "Fontainebleau Miami Beach",
			RestaurantsVisited: []string{"demo-4"},
			DiningExpenses: []model.DiningExpense{
				{RestaurantID: "demo-4", Amount: 93.60, Date: "2025-01-09"},
			},
		},
	}
}

// demoUpcoming mirrors a plausible booked-travel record.
func demoUpcoming() []model.Trip {
	return []model.Trip{
		{
			ID: "trip-sea", City: "Seattle", State: "WA", Country: "USA",
			Coordinates: model.Location{Latitude: 47.6076, Longitude: -122.3385},
			StartDate:   "2026-03-15", EndDate: "2026-03-19", Purpose: "Business",
			Hotel: "Four Seasons Hotel Seattle",
		},
		{
			ID: "trip-aus", City: "Austin", State: "TX", Country: "USA",
			Coordinates: model.Location{Latitude: 30.2672, Longitude: -97.7394},
			StartDate:   "2026-04-10", EndDate: "2026-04-14", Purpose: "Conference",
			Hotel: "The Driskill",
		},
		{
			ID: "trip-bos", City: "Boston", State: "MA", Country: "USA",
			Coordinates: model.Location{Latitude: 42.3625, Longitude: -71.0661},
			StartDate:   "2026-05-05", EndDate: "2026-05-09", Purpose: "Business",
			Hotel: "The Liberty Hotel",
		},
	}
}
