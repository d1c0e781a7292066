package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/menuboard-v2/backend/internal/auth"
	"github.com/forkful/menuboard-v2/backend/internal/middleware"
	"github.com/forkful/menuboard-v2/backend/internal/service"
)

type RestaurantHandler struct {
	restaurantService *service.RestaurantService
	assignmentService *service.AssignmentService
	authorizer        *auth.Authorizer
}

func NewRestaurantHandler(restaurantService *service.RestaurantService, assignmentService *service.AssignmentService, authorizer *auth.Authorizer) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
		assignmentService: assignmentService,
		authorizer:        authorizer,
	}
}

// RegisterRoutes wires the authenticated restaurant surface. Every
// tenant-scoped route goes through the authorization gate before anything
// touches the store.
func (h *RestaurantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/restaurants", h.Create)
	router.GET("/me/restaurants", h.ListMine)

	restaurant := router.Group("/restaurants/:id")
	{
		restaurant.GET("", h.Get)
		restaurant.PUT("", h.Update)
		restaurant.DELETE("", h.Delete)
	}
}

// Create provisions a new tenant. There is no assignment to check before the
// tenant exists, so creation is an admin action; the admin then assigns
// staff to the fresh restaurant.
func (h *RestaurantHandler) Create(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}

	var in service.RestaurantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant, err := h.restaurantService.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

func (h *RestaurantHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !gate(c, h.authorizer, id) {
		return
	}

	restaurant, err := h.restaurantService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !gate(c, h.authorizer, id) {
		return
	}

	var in service.RestaurantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant, err := h.restaurantService.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !gate(c, h.authorizer, id) {
		return
	}

	if err := h.restaurantService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMine returns the restaurants the caller is assigned to.
func (h *RestaurantHandler) ListMine(c *gin.Context) {
	subject := middleware.SubjectFrom(c)
	if subject == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	assignments, err := h.assignmentService.ListByUser(c.Request.Context(), subject.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}
