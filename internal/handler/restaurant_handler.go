package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onthego/internal/domain/geo"
	"onthego/internal/domain/model"
	"onthego/internal/domain/service"
	"onthego/internal/usecase"
)

// RestaurantHandler serves the search pipeline: center changes, filtered
// listings, venue detail and hotel lookup.
type RestaurantHandler struct {
	searchUseCase usecase.RestaurantSearchUseCase
}

// NewRestaurantHandler creates a new RestaurantHandler instance.
func NewRestaurantHandler(searchUseCase usecase.RestaurantSearchUseCase) *RestaurantHandler {
	return &RestaurantHandler{searchUseCase: searchUseCase}
}

// PostSearch establishes a new search center and refetches nearby venues.
// POST /api/search
func (h *RestaurantHandler) PostSearch(c *gin.Context) {
	var req model.SearchContext
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if err := validateSearchContext(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	restaurants, err := h.searchUseCase.SetCenter(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to search restaurants: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"context":     req,
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}

// validateSearchContext checks geometry and source kind before the pipeline runs.
func validateSearchContext(sc *model.SearchContext) error {
	if sc.Latitude < -90 || sc.Latitude > 90 {
		return &ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"}
	}
	if sc.Longitude < -180 || sc.Longitude > 180 {
		return &ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"}
	}
	if !sc.IsValid() {
		return &ValidationError{Field: "source_kind", Message: "source_kind must be one of gps, trip, address-search, map-recenter"}
	}
	return nil
}

// GetRestaurants returns the current result set filtered and sorted by the
// query parameters. GET /api/restaurants
func (h *RestaurantHandler) GetRestaurants(c *gin.Context) {
	if !h.searchUseCase.HasCenter() {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "no_search_center",
			"message": "No search center established; POST /api/search first",
		})
		return
	}

	var criteria service.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "Invalid query parameters: " + err.Error(),
		})
		return
	}
	if criteria.SortBy != "" && !model.IsValidSortKey(criteria.SortBy) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "sort_by must be one of relevance, distance, review_count, suitability",
		})
		return
	}

	restaurants := h.searchUseCase.Query(criteria)
	c.JSON(http.StatusOK, gin.H{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}

// GetRestaurant returns one venue with its action links and display strings.
// GET /api/restaurants/:id
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "restaurant id is required",
		})
		return
	}

	restaurant := h.searchUseCase.FindByID(id)
	if restaurant == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Restaurant not found in current results: " + id,
		})
		return
	}

	detail := gin.H{
		"restaurant":   restaurant,
		"directions":   restaurant.DirectionsLink(),
		"reservations": restaurant.ReservationLinks(),
		"delivery":     restaurant.DeliveryLinks(),
		"social":       restaurant.SocialLinks(),
	}
	if restaurant.DistanceMeters != nil {
		detail["distance_display"] = geo.FormatDistance(*restaurant.DistanceMeters)
	}
	if restaurant.RouteTimes != nil {
		detail["route_display"] = geo.FormatRouteTimes(restaurant.RouteTimes)
	}
	c.JSON(http.StatusOK, detail)
}

// GetHotels does a lodging text search biased to the current center.
// GET /api/hotels?query=...
func (h *RestaurantHandler) GetHotels(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "query parameter is required",
		})
		return
	}

	hotels, err := h.searchUseCase.SearchHotels(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to search hotels: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hotels": hotels,
		"count":  len(hotels),
	})
}

// ValidationError carries the failing field with its message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
