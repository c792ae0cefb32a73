package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onthego/internal/application"
	"onthego/internal/domain/service"
	"onthego/internal/infrastructure/calendar"
	"onthego/internal/infrastructure/places"
	"onthego/internal/infrastructure/store"
	"onthego/internal/usecase"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kv := store.NewMemoryStore()
	userState := application.NewUserStateService(kv)
	plans := application.NewPlanStore(kv)
	trips := application.NewTripsService(kv)
	scorer := service.NewDefaultScorer()
	resolver := service.NewRouteTimeResolver(nil, nil)

	searchUseCase := usecase.NewRestaurantSearchUseCase(
		nil, places.NewDemoProvider(), scorer, userState, plans, 8047, 20)
	shareUseCase := usecase.NewShareUseCase(userState, searchUseCase)

	r := gin.New()
	RegisterRoutes(r, Handlers{
		Restaurants: NewRestaurantHandler(searchUseCase),
		RouteTimes:  NewRouteTimesHandler(resolver),
		Plan:        NewPlanHandler(plans),
		UserState:   NewUserStateHandler(userState),
		Share:       NewShareHandler(shareUseCase),
		Trips:       NewTripsHandler(trips, searchUseCase),
		Calendar:    NewCalendarHandler(calendar.NewExporter(), plans, searchUseCase),
	})
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func establishCenter(t *testing.T, router *gin.Engine) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/search", map[string]any{
		"latitude": 37.7749, "longitude": -122.4194,
		"label": "San Francisco", "source_kind": "gps",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	router := setupRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestSearchValidation(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/search", map[string]any{
		"latitude": 95.0, "longitude": 0.0, "source_kind": "gps",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decodeBody(t, w)["error"])

	w = doJSON(t, router, http.MethodPost, "/api/search", map[string]any{
		"latitude": 1.0, "longitude": 2.0, "source_kind": "carrier-pigeon",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchAndListFlow(t *testing.T) {
	router := setupRouter(t)

	// Listing before any search center exists is a conflict, not a panic.
	w := doJSON(t, router, http.MethodGet, "/api/restaurants", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	establishCenter(t, router)

	w = doJSON(t, router, http.MethodGet, "/api/restaurants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(14), body["count"])

	// Filters narrow the same result set.
	w = doJSON(t, router, http.MethodGet, "/api/restaurants?price=%24%24%24%24", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = doJSON(t, router, http.MethodGet, "/api/restaurants?sort_by=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestaurantDetail(t *testing.T) {
	router := setupRouter(t)
	establishCenter(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/restaurants/demo:demo-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["directions"])
	assert.NotEmpty(t, body["reservations"])
	assert.NotEmpty(t, body["distance_display"])

	w = doJSON(t, router, http.MethodGet, "/api/restaurants/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlanPatch(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/plan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "business", decodeBody(t, w)["vibe"])

	w = doJSON(t, router, http.MethodPatch, "/api/plan", map[string]any{
		"vibe": "lively", "walk_minutes": 99,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "lively", body["vibe"])
	assert.Equal(t, float64(45), body["walk_minutes"]) // clamped
}

func TestShortlistShareFlow(t *testing.T) {
	router := setupRouter(t)
	establishCenter(t, router)

	w := doJSON(t, router, http.MethodPut, "/api/restaurants/demo:demo-1/shortlist", map[string]any{"pinned": true})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodPut, "/api/restaurants/demo:demo-1/note", map[string]any{"note": "window table"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/shortlist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = doJSON(t, router, http.MethodGet, "/api/share", nil)
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	// A second session imports the token.
	other := setupRouter(t)
	w = doJSON(t, other, http.MethodPost, "/api/share/import", map[string]any{"token": token})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["imported"])
	assert.Equal(t, float64(1), body["added"])

	// Garbage tokens are a reported no-op, not a server error.
	w = doJSON(t, other, http.MethodPost, "/api/share/import", map[string]any{"token": "!!!"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["imported"])
}

func TestRouteTimesEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/routetimes", map[string]any{
		"origin": map[string]float64{"lat": 37.7749, "lng": -122.4194},
		"destinations": map[string]any{
			"demo:demo-1": map[string]float64{"lat": 37.7799, "lng": -122.4164},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	routes, ok := decodeBody(t, w)["routes"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, routes, "demo:demo-1")
	entry := routes["demo:demo-1"].(map[string]any)
	times := entry["times"].(map[string]any)
	assert.Equal(t, "estimate", times["provider"])
	assert.NotEmpty(t, entry["display"])

	w = doJSON(t, router, http.MethodPost, "/api/routetimes", map[string]any{
		"origin": map[string]float64{"lat": 1, "lng": 2},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTripsEndpoints(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/trips/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), decodeBody(t, w)["count"])

	w = doJSON(t, router, http.MethodPost, "/api/trips/upcoming", map[string]any{
		"city":        "Denver",
		"coordinates": map[string]float64{"latitude": 39.74, "longitude": -104.99},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/trips/upcoming", map[string]any{"city": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Jumping to a trip re-centers the search on its hotel.
	w = doJSON(t, router, http.MethodPost, "/api/trips/trip-sea/search", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(14), decodeBody(t, w)["count"])

	w = doJSON(t, router, http.MethodPost, "/api/trips/trip-nowhere/search", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalendarExport(t *testing.T) {
	router := setupRouter(t)
	establishCenter(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/restaurants/demo:demo-1/calendar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, w.Body.String(), "BEGIN:VEVENT")
	assert.Contains(t, w.Body.String(), "SUMMARY:Dinner at The Golden Spoon")
}
