package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onthego/internal/application"
)

// UserStateHandler serves the per-user overlay: visited flags, notes,
// shortlist pins, profile and settings.
type UserStateHandler struct {
	userState *application.UserStateService
}

// NewUserStateHandler creates a new UserStateHandler instance.
func NewUserStateHandler(userState *application.UserStateService) *UserStateHandler {
	return &UserStateHandler{userState: userState}
}

type visitedRequest struct {
	Visited bool   `json:"visited"`
	Date    string `json:"date"`
}

// PutVisited flags a venue as visited or not. PUT /api/restaurants/:id/visited
func (h *UserStateHandler) PutVisited(c *gin.Context) {
	id := c.Param("id")
	var req visitedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if err := h.userState.SetVisited(id, req.Visited, req.Date); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to save visited flag: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "visited": req.Visited})
}

type noteRequest struct {
	Note string `json:"note"`
}

// PutNote stores (or clears, with an empty note) the user's note for a venue.
// PUT /api/restaurants/:id/note
func (h *UserStateHandler) PutNote(c *gin.Context) {
	id := c.Param("id")
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if err := h.userState.SetNote(id, req.Note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to save note: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "note": req.Note})
}

type pinRequest struct {
	Pinned bool `json:"pinned"`
}

// PutPin adds or removes a venue from the shortlist.
// PUT /api/restaurants/:id/shortlist
func (h *UserStateHandler) PutPin(c *gin.Context) {
	id := c.Param("id")
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if err := h.userState.SetPinned(id, req.Pinned); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to update shortlist: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "pinned": req.Pinned})
}

// GetShortlist returns all shortlisted entries. GET /api/shortlist
func (h *UserStateHandler) GetShortlist(c *gin.Context) {
	entries, err := h.userState.Shortlist()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load shortlist: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shortlist": entries, "count": len(entries)})
}

// GetProfile returns the stored profile. GET /api/profile
func (h *UserStateHandler) GetProfile(c *gin.Context) {
	profile, err := h.userState.Profile()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load profile: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PutProfile stores the profile. PUT /api/profile
func (h *UserStateHandler) PutProfile(c *gin.Context) {
	var profile application.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}
	if err := h.userState.SetProfile(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to save profile: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetSettings returns the stored settings with defaults applied. GET /api/settings
func (h *UserStateHandler) GetSettings(c *gin.Context) {
	settings, err := h.userState.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load settings: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PutSettings stores the settings. PUT /api/settings
func (h *UserStateHandler) PutSettings(c *gin.Context) {
	var settings application.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}
	if settings.RadiusMeters <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "radius_meters must be positive",
		})
		return
	}
	if err := h.userState.SetSettings(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to save settings: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, settings)
}
