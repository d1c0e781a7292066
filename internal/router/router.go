package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/internal/api"
	"github.com/forkful/menuboard-v2/backend/internal/database"
	"github.com/forkful/menuboard-v2/backend/internal/middleware"
	"github.com/forkful/menuboard-v2/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	db *gorm.DB,
	authHandler *api.AuthHandler,
	publicHandler *api.PublicHandler,
	restaurantHandler *api.RestaurantHandler,
	menuHandler *api.MenuHandler,
	assignmentHandler *api.AssignmentHandler,
	authService *service.AuthService,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes: no authentication, inactive tenants read as missing
	authHandler.RegisterRoutes(v1)
	publicHandler.RegisterRoutes(v1)

	// Protected routes: authenticated subject required, per-restaurant
	// authorization handled inside each handler
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		restaurantHandler.RegisterRoutes(protected)
		menuHandler.RegisterRoutes(protected)
		assignmentHandler.RegisterRoutes(protected)
	}

	return router
}
