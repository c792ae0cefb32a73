package model

// View modes the client can display. Exactly one is active at a time.
const (
	ViewWorld     = "world"
	ViewLocal     = "local"
	ViewTravelLog = "travellog"
)

// Sources a search context can come from.
const (
	SourceGPS           = "gps"
	SourceTrip          = "trip"
	SourceAddressSearch = "address-search"
	SourceMapRecenter   = "map-recenter"
)

// Price tiers, ordered cheapest to most expensive. Empty string means unknown.
const (
	PriceUnknown = ""
	PriceCheap   = "$"
	PriceMid     = "$$"
	PriceUpper   = "$$$"
	PriceTop     = "$$$$"
)

// Dinner plan vibes.
const (
	VibeBusiness    = "business"
	VibeQuiet       = "quiet"
	VibeLively      = "lively"
	VibeSolo        = "solo"
	VibeCelebratory = "celebratory"
)

// Dinner plan budgets.
const (
	BudgetLow  = "low"
	BudgetMid  = "mid"
	BudgetHigh = "high"
)

// Sort keys for the filtered restaurant list.
const (
	SortRelevance   = "relevance"
	SortDistance    = "distance"
	SortReviewCount = "review_count"
	SortSuitability = "suitability"
)

// Search presets the view layer can auto-select by time of day.
const (
	PresetCoffee       = "coffee"
	PresetLunch        = "lunch"
	PresetClientDinner = "client-dinner"
)

// Derived ambiance tags. Fixed vocabulary, assigned by the normalizer.
const (
	TagBusinessMeal = "Good for Business Meal"
	TagChill        = "Chill"
	TagFun          = "Fun"
	TagLocalSpots   = "Local Spots"
)

// PriceRank maps a price tier string to its ordinal (unknown=0, "$"=1 ... "$$$$"=4).
func PriceRank(price string) int {
	switch price {
	case PriceCheap:
		return 1
	case PriceMid:
		return 2
	case PriceUpper:
		return 3
	case PriceTop:
		return 4
	default:
		return 0
	}
}

// BudgetToPrice maps a plan budget to the price tier it targets.
func BudgetToPrice(budget string) string {
	switch budget {
	case BudgetLow:
		return PriceCheap
	case BudgetMid:
		return PriceMid
	case BudgetHigh:
		return PriceUpper
	default:
		return PriceUnknown
	}
}

// GetAllVibes returns the valid vibe values.
func GetAllVibes() []string {
	return []string{VibeBusiness, VibeQuiet, VibeLively, VibeSolo, VibeCelebratory}
}

// GetAllBudgets returns the valid budget values.
func GetAllBudgets() []string {
	return []string{BudgetLow, BudgetMid, BudgetHigh}
}

// GetAllViews returns the valid view modes.
func GetAllViews() []string {
	return []string{ViewWorld, ViewLocal, ViewTravelLog}
}

// GetAllSortKeys returns the valid sort keys.
func GetAllSortKeys() []string {
	return []string{SortRelevance, SortDistance, SortReviewCount, SortSuitability}
}

// IsValidVibe reports whether v is a known vibe.
func IsValidVibe(v string) bool {
	for _, vibe := range GetAllVibes() {
		if v == vibe {
			return true
		}
	}
	return false
}

// IsValidBudget reports whether b is a known budget.
func IsValidBudget(b string) bool {
	for _, budget := range GetAllBudgets() {
		if b == budget {
			return true
		}
	}
	return false
}

// IsValidSortKey reports whether s is a known sort key.
func IsValidSortKey(s string) bool {
	for _, key := range GetAllSortKeys() {
		if s == key {
			return true
		}
	}
	return false
}

// IsValidView reports whether v is a known view mode.
func IsValidView(v string) bool {
	for _, view := range GetAllViews() {
		if v == view {
			return true
		}
	}
	return false
}
