package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/menuboard-v2/backend/internal/service"
)

type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// RegisterRoutes wires the staff-assignment surface. Assignments are created
// and revoked by admin action only.
func (h *AssignmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	assignments := router.Group("/restaurants/:id/assignments")
	{
		assignments.GET("", h.List)
		assignments.POST("", h.Upsert)
		assignments.DELETE("/:userID", h.Revoke)
	}
}

func (h *AssignmentHandler) List(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.ListByRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *AssignmentHandler) Upsert(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in service.AssignmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.assignmentService.Upsert(c.Request.Context(), restaurantID, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) Revoke(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	if err := h.assignmentService.Revoke(c.Request.Context(), restaurantID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
