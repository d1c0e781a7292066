package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/menuboard-v2/backend/internal/auth"
	"github.com/forkful/menuboard-v2/backend/internal/service"
)

type MenuHandler struct {
	menuService *service.MenuService
	authorizer  *auth.Authorizer
}

func NewMenuHandler(menuService *service.MenuService, authorizer *auth.Authorizer) *MenuHandler {
	return &MenuHandler{menuService: menuService, authorizer: authorizer}
}

func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	restaurant := router.Group("/restaurants/:id")
	{
		restaurant.GET("/categories", h.ListCategories)
		restaurant.POST("/categories", h.CreateCategory)
		restaurant.PUT("/categories/:categoryID", h.UpdateCategory)
		restaurant.DELETE("/categories/:categoryID", h.DeleteCategory)

		restaurant.POST("/items", h.CreateItem)
		restaurant.PUT("/items/:itemID", h.UpdateItem)
		restaurant.DELETE("/items/:itemID", h.DeleteItem)
	}
}

func (h *MenuHandler) ListCategories(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !gate(c, h.authorizer, restaurantID) {
		return
	}

	categories, err := h.menuService.ListCategories(c.Request.Context(), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *MenuHandler) CreateCategory(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !gate(c, h.authorizer, restaurantID) {
		return
	}

	var in service.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.menuService.CreateCategory(c.Request.Context(), restaurantID, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "categoryID")
	if !ok {
		return
	}
	if !gate(c, h.authorizer, restaurantID) {
		return
	}

	var in service.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.menuService.UpdateCategory(c.Request.Context(), restaurantID, categoryID, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "categoryID")
	if !ok {
		return
	}
	if !gate(c, h.authorizer, restaurantID) {
		return
	}

	if err := h.menuService.DeleteCategory(c.Request.Context(), restaurantID, categoryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenuHandler) CreateItem(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !gate(c, h.authorizer, restaurantID) {
		return
	}

	var in service.MenuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.menuService.CreateItem(c.Request.Context(), restaurantID, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) UpdateItem(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}
	if !gate(c, h.authorizer, restaurantID) {
		return
	}

	var in service.MenuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.menuService.UpdateItem(c.Request.Context(), restaurantID, itemID, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteItem(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}
	if !gate(c, h.authorizer, restaurantID) {
		return
	}

	if err := h.menuService.DeleteItem(c.Request.Context(), restaurantID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
