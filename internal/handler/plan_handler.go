package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onthego/internal/application"
	"onthego/internal/domain/model"
)

// PlanHandler serves the session dining plan.
type PlanHandler struct {
	plans *application.PlanStore
}

// NewPlanHandler creates a new PlanHandler instance.
func NewPlanHandler(plans *application.PlanStore) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// GetPlan returns the current dining plan. GET /api/plan
func (h *PlanHandler) GetPlan(c *gin.Context) {
	c.JSON(http.StatusOK, h.plans.Get())
}

// PatchPlan merges a partial update into the plan. Unknown enum values are
// ignored and out-of-range values clamped, so the merged plan is always valid.
// PATCH /api/plan
func (h *PlanHandler) PatchPlan(c *gin.Context) {
	var patch model.PlanPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	updated, err := h.plans.Set(patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to save plan: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, updated)
}
