package service

import (
	"math"
	"sort"
	"strings"

	"onthego/internal/domain/model"
)

// Criteria is the live filter/sort state. Filters are independent predicates
// AND-ed together; exactly one sort key is active.
type Criteria struct {
	Query       string `json:"query" form:"query"`
	Cuisine     string `json:"cuisine" form:"cuisine"`
	Price       string `json:"price" form:"price"`
	Ambiance    string `json:"ambiance" form:"ambiance"`
	VisitedOnly bool   `json:"visited_only" form:"visited_only"`
	OpenNowOnly bool   `json:"open_now_only" form:"open_now_only"`
	SortBy      string `json:"sort_by" form:"sort_by"`
}

// FilterSortEngine produces the displayed subset of the current result set.
// Its output is the single source of truth for both the list and the map
// markers, so the two can never diverge.
type FilterSortEngine struct {
	scorer *SuitabilityScorer
}

// NewFilterSortEngine creates an engine backed by the given scorer.
func NewFilterSortEngine(scorer *SuitabilityScorer) *FilterSortEngine {
	return &FilterSortEngine{scorer: scorer}
}

// Apply runs the full filter chain then the active ordering over a copy of the
// input. Recomputed fully on each call; a stable sort keeps equal elements in
// input order so repeated calls with unchanged input yield unchanged output.
func (e *FilterSortEngine) Apply(all []model.Restaurant, c Criteria, plan *model.DiningPlan) []model.Restaurant {
	filtered := make([]model.Restaurant, 0, len(all))
	for _, r := range all {
		if e.matches(&r, c) {
			filtered = append(filtered, r)
		}
	}
	e.sortRestaurants(filtered, c.SortBy, plan)
	return filtered
}

func (e *FilterSortEngine) matches(r *model.Restaurant, c Criteria) bool {
	if q := strings.TrimSpace(c.Query); q != "" && !matchesQuery(r, q) {
		return false
	}
	if c.Cuisine != "" && !hasCategoryTitle(r, c.Cuisine) {
		return false
	}
	if c.Price != "" && r.Price != c.Price {
		return false
	}
	if c.Ambiance != "" && !r.HasTag(c.Ambiance) {
		return false
	}
	if c.VisitedOnly && !r.Visited {
		return false
	}
	// Open-now excludes both closed and unknown.
	if c.OpenNowOnly && !r.IsOpenNow() {
		return false
	}
	return true
}

// matchesQuery is a case-insensitive substring match against name, category
// titles, city, state and zip.
func matchesQuery(r *model.Restaurant, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	for _, c := range r.Categories {
		if strings.Contains(strings.ToLower(c.Title), q) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(r.Address.City), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Address.State), q) {
		return true
	}
	return strings.Contains(r.Address.Zip, query)
}

func hasCategoryTitle(r *model.Restaurant, title string) bool {
	for _, c := range r.Categories {
		if c.Title == title {
			return true
		}
	}
	return false
}

func (e *FilterSortEngine) sortRestaurants(list []model.Restaurant, sortBy string, plan *model.DiningPlan) {
	switch sortBy {
	case model.SortDistance:
		sort.SliceStable(list, func(i, j int) bool {
			return distanceOrInf(&list[i]) < distanceOrInf(&list[j])
		})
	case model.SortReviewCount:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].ReviewCount > list[j].ReviewCount
		})
	case model.SortSuitability:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].SuitabilityScore > list[j].SuitabilityScore
		})
	default: // relevance
		// Relevance is computed fresh at sort time; it depends on the plan.
		scores := make([]float64, len(list))
		for i := range list {
			scores[i] = e.scorer.Relevance(&list[i], plan)
		}
		indexed := make([]int, len(list))
		for i := range indexed {
			indexed[i] = i
		}
		sort.SliceStable(indexed, func(i, j int) bool {
			return scores[indexed[i]] > scores[indexed[j]]
		})
		sorted := make([]model.Restaurant, len(list))
		for pos, idx := range indexed {
			sorted[pos] = list[idx]
		}
		copy(list, sorted)
	}
}

// distanceOrInf sorts venues without a computed distance to the end.
func distanceOrInf(r *model.Restaurant) float64 {
	if r.DistanceMeters == nil {
		return math.Inf(1)
	}
	return *r.DistanceMeters
}
