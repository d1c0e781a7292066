package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/menuboard-v2/backend/internal/cache"
	"github.com/forkful/menuboard-v2/backend/internal/service"
)

// PublicHandler serves the unauthenticated surface: featured listing,
// search, and menu pages by slug. Inactive and missing restaurants are
// indistinguishable here.
type PublicHandler struct {
	restaurantService *service.RestaurantService
	searchService     *service.SearchService
	menuCache         *cache.MenuCache
}

func NewPublicHandler(restaurantService *service.RestaurantService, searchService *service.SearchService, menuCache *cache.MenuCache) *PublicHandler {
	return &PublicHandler{
		restaurantService: restaurantService,
		searchService:     searchService,
		menuCache:         menuCache,
	}
}

func (h *PublicHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/restaurants", h.ListFeatured)
	router.GET("/search", h.Search)
	router.GET("/menus/:slug", h.MenuBySlug)
}

func (h *PublicHandler) ListFeatured(c *gin.Context) {
	restaurants, err := h.restaurantService.ListFeatured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

func (h *PublicHandler) Search(c *gin.Context) {
	results, err := h.searchService.SearchRestaurants(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// MenuBySlug serves a full menu page payload. Cache hits skip the store;
// misses render from the store and fill the cache. Only active restaurants
// are ever cached, so invalidation on mutation keeps hits honest.
func (h *PublicHandler) MenuBySlug(c *gin.Context) {
	slug := c.Param("slug")

	if payload, ok := h.menuCache.Get(c.Request.Context(), slug); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
		return
	}

	restaurant, err := h.restaurantService.GetBySlug(c.Request.Context(), slug, true)
	if err != nil {
		respondError(c, err)
		return
	}

	if payload, err := json.Marshal(restaurant); err == nil {
		h.menuCache.Set(c.Request.Context(), restaurant.Slug, string(payload))
	}
	c.JSON(http.StatusOK, restaurant)
}
