package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onthego/internal/domain/geo"
	"onthego/internal/domain/model"
	"onthego/internal/domain/service"
)

// RouteTimesHandler resolves walk/drive durations between the search center
// and a batch of venues.
type RouteTimesHandler struct {
	resolver *service.RouteTimeResolver
}

// NewRouteTimesHandler creates a new RouteTimesHandler instance.
func NewRouteTimesHandler(resolver *service.RouteTimeResolver) *RouteTimesHandler {
	return &RouteTimesHandler{resolver: resolver}
}

type routeTimesRequest struct {
	Origin       model.LatLng            `json:"origin"`
	Destinations map[string]model.LatLng `json:"destinations"`
}

type routeTimesEntry struct {
	Times   *model.RouteTimes `json:"times"`
	Display string            `json:"display"`
}

// PostRouteTimes resolves each destination against the shared origin. The
// resolution never fails per-pair; the response always covers every requested id.
// POST /api/routetimes
func (h *RouteTimesHandler) PostRouteTimes(c *gin.Context) {
	var req routeTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}
	if len(req.Destinations) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "destinations must contain at least one id -> coordinates pair",
		})
		return
	}

	results := make(map[string]routeTimesEntry, len(req.Destinations))
	for id, dest := range req.Destinations {
		times := h.resolver.GetTimes(c.Request.Context(), req.Origin, dest)
		results[id] = routeTimesEntry{
			Times:   times,
			Display: geo.FormatRouteTimes(times),
		}
	}

	c.JSON(http.StatusOK, gin.H{"routes": results})
}

// DeleteRouteTimes drops the session cache, forcing fresh resolutions after a
// center change. DELETE /api/routetimes
func (h *RouteTimesHandler) DeleteRouteTimes(c *gin.Context) {
	h.resolver.Invalidate()
	c.JSON(http.StatusOK, gin.H{"invalidated": true})
}
