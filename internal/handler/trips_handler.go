package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onthego/internal/application"
	"onthego/internal/domain/model"
	"onthego/internal/usecase"
)

// TripsHandler serves the travel log: past and upcoming stays, and jumping the
// search to a trip's hotel.
type TripsHandler struct {
	trips         *application.TripsService
	searchUseCase usecase.RestaurantSearchUseCase
}

// NewTripsHandler creates a new TripsHandler instance.
func NewTripsHandler(trips *application.TripsService, searchUseCase usecase.RestaurantSearchUseCase) *TripsHandler {
	return &TripsHandler{trips: trips, searchUseCase: searchUseCase}
}

// GetHistory returns past trips with their dining spend. GET /api/trips/history
func (h *TripsHandler) GetHistory(c *gin.Context) {
	trips, err := h.trips.History()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load trip history: " + err.Error(),
		})
		return
	}

	out := make([]gin.H, 0, len(trips))
	for _, t := range trips {
		out = append(out, gin.H{
			"trip":         t,
			"dining_spend": t.DiningSpend(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"trips": out, "count": len(out)})
}

// GetUpcoming returns booked future trips. GET /api/trips/upcoming
func (h *TripsHandler) GetUpcoming(c *gin.Context) {
	trips, err := h.trips.Upcoming()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load upcoming trips: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips, "count": len(trips)})
}

// PostUpcoming books a new future trip. POST /api/trips/upcoming
func (h *TripsHandler) PostUpcoming(c *gin.Context) {
	var trip model.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}
	if trip.City == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "city: city is required",
		})
		return
	}
	if !trip.Coordinates.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "coordinates: valid coordinates are required",
		})
		return
	}

	saved, err := h.trips.AddUpcoming(trip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to save trip: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// PostTripSearch re-centers the local search on a trip's hotel coordinates.
// POST /api/trips/:id/search
func (h *TripsHandler) PostTripSearch(c *gin.Context) {
	id := c.Param("id")
	trip, err := h.trips.Find(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load trip: " + err.Error(),
		})
		return
	}
	if trip == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Trip not found: " + id,
		})
		return
	}

	restaurants, err := h.searchUseCase.SetCenter(c.Request.Context(), trip.SearchContext())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to search around trip: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trip":        trip,
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}
