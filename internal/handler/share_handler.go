package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onthego/internal/share"
	"onthego/internal/usecase"
)

// ShareHandler exports the shortlist as a URL-fragment token and imports
// tokens received from others.
type ShareHandler struct {
	shareUseCase usecase.ShareUseCase
}

// NewShareHandler creates a new ShareHandler instance.
func NewShareHandler(shareUseCase usecase.ShareUseCase) *ShareHandler {
	return &ShareHandler{shareUseCase: shareUseCase}
}

// GetShare exports the current shortlist. GET /api/share
func (h *ShareHandler) GetShare(c *gin.Context) {
	token, err := h.shareUseCase.Export()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to build share token: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"fragment": "#" + share.FragmentPrefix + token,
	})
}

type importRequest struct {
	Token string `json:"token"`
}

// PostShareImport merges a shared shortlist into the user's own. An
// undecodable token is reported as imported=false, never as an error.
// POST /api/share/import
func (h *ShareHandler) PostShareImport(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	result, err := h.shareUseCase.Import(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to import share token: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}
