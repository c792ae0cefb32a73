package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"onthego/internal/application"
	"onthego/internal/infrastructure/calendar"
	"onthego/internal/usecase"
)

// CalendarHandler exports a dinner hold for a venue as an .ics download built
// from the current dining plan.
type CalendarHandler struct {
	exporter      *calendar.Exporter
	plans         *application.PlanStore
	searchUseCase usecase.RestaurantSearchUseCase
}

// NewCalendarHandler creates a new CalendarHandler instance.
func NewCalendarHandler(exporter *calendar.Exporter, plans *application.PlanStore, searchUseCase usecase.RestaurantSearchUseCase) *CalendarHandler {
	return &CalendarHandler{exporter: exporter, plans: plans, searchUseCase: searchUseCase}
}

// GetCalendar renders the hold for one venue at the plan's date and time.
// GET /api/restaurants/:id/calendar
func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	id := c.Param("id")
	restaurant := h.searchUseCase.FindByID(id)
	if restaurant == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Restaurant not found in current results: " + id,
		})
		return
	}

	plan := h.plans.Get()
	start := calendar.ParseStart(plan.Date, plan.Time, time.Local)
	if start.IsZero() {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "invalid_plan",
			"message": "Plan date/time is not set; PATCH /api/plan first",
		})
		return
	}

	parts := []string{}
	for _, p := range []string{restaurant.Address.Street, restaurant.Address.City, restaurant.Address.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	location := strings.Join(parts, ", ")
	if location == "" {
		location = restaurant.Name
	}
	ics := h.exporter.Build(calendar.Event{
		Title:           "Dinner at " + restaurant.Name,
		Location:        location,
		Start:           start,
		DurationMinutes: 90,
		Description:     "Party of " + strconv.Itoa(plan.PartySize),
	})

	filename := strings.ReplaceAll(strings.ToLower(restaurant.Name), " ", "-") + ".ics"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
