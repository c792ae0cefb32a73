package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Restaurants *RestaurantHandler
	RouteTimes  *RouteTimesHandler
	Plan        *PlanHandler
	UserState   *UserStateHandler
	Share       *ShareHandler
	Trips       *TripsHandler
	Calendar    *CalendarHandler
}

// RegisterRoutes mounts the full API surface on the engine.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "onthego"})
	})

	api := r.Group("/api")
	{
		api.POST("/search", h.Restaurants.PostSearch)
		api.GET("/restaurants", h.Restaurants.GetRestaurants)
		api.GET("/restaurants/:id", h.Restaurants.GetRestaurant)
		api.GET("/hotels", h.Restaurants.GetHotels)

		api.POST("/routetimes", h.RouteTimes.PostRouteTimes)
		api.DELETE("/routetimes", h.RouteTimes.DeleteRouteTimes)

		api.GET("/plan", h.Plan.GetPlan)
		api.PATCH("/plan", h.Plan.PatchPlan)

		api.PUT("/restaurants/:id/visited", h.UserState.PutVisited)
		api.PUT("/restaurants/:id/note", h.UserState.PutNote)
		api.PUT("/restaurants/:id/shortlist", h.UserState.PutPin)
		api.GET("/shortlist", h.UserState.GetShortlist)
		api.GET("/profile", h.UserState.GetProfile)
		api.PUT("/profile", h.UserState.PutProfile)
		api.GET("/settings", h.UserState.GetSettings)
		api.PUT("/settings", h.UserState.PutSettings)

		api.GET("/share", h.Share.GetShare)
		api.POST("/share/import", h.Share.PostShareImport)

		api.GET("/trips/history", h.Trips.GetHistory)
		api.GET("/trips/upcoming", h.Trips.GetUpcoming)
		api.POST("/trips/upcoming", h.Trips.PostUpcoming)
		api.POST("/trips/:id/search", h.Trips.PostTripSearch)

		api.GET("/restaurants/:id/calendar", h.Calendar.GetCalendar)
	}
}
