package model

// DiningExpense is one logged restaurant spend during a trip.
type DiningExpense struct {
	RestaurantID string  `json:"restaurant_id"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
}

// Trip is one past or upcoming hotel stay shown on the world view.
type Trip struct {
	ID                 string          `json:"id"`
	City               string          `json:"city"`
	State              string          `json:"state"`
	Country            string          `json:"country"`
	Coordinates        Location        `json:"coordinates"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	Purpose            string          `json:"purpose"`
	Hotel              string          `json:"hotel"`
	RestaurantsVisited []string        `json:"restaurants_visited,omitempty"`
	DiningExpenses     []DiningExpense `json:"dining_expenses,omitempty"`
}

// DiningSpend totals the trip's logged restaurant expenses.
func (t Trip) DiningSpend() float64 {
	var total float64
	for _, e := range t.DiningExpenses {
		total += e.Amount
	}
	return total
}

// SearchContext returns the trip's hotel as a search center.
func (t Trip) SearchContext() SearchContext {
	label := t.Hotel
	if label == "" {
		label = t.City
	}
	return SearchContext{
		Latitude:   t.Coordinates.Latitude,
		Longitude:  t.Coordinates.Longitude,
		Label:      label,
		SourceKind: SourceTrip,
	}
}
