package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/config"
	"github.com/forkful/menuboard-v2/backend/internal/api"
	"github.com/forkful/menuboard-v2/backend/internal/auth"
	"github.com/forkful/menuboard-v2/backend/internal/cache"
	"github.com/forkful/menuboard-v2/backend/internal/database"
	"github.com/forkful/menuboard-v2/backend/internal/router"
	"github.com/forkful/menuboard-v2/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New wires the full application: store, cache, services, handlers, routes.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	// The cache is optional; the server runs degraded without Redis.
	var menuCache *cache.MenuCache
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		log.Printf("Redis unavailable, serving menus uncached: %v", err)
	} else {
		menuCache = cache.NewMenuCache(redisClient, 5*time.Minute)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	restaurantService := service.NewRestaurantService(db, menuCache)
	menuService := service.NewMenuService(db, menuCache)
	searchService := service.NewSearchService(db)
	assignmentService := service.NewAssignmentService(db)
	authorizer := auth.NewAuthorizer(db)

	engine := router.SetupRouter(
		db,
		api.NewAuthHandler(authService),
		api.NewPublicHandler(restaurantService, searchService, menuCache),
		api.NewRestaurantHandler(restaurantService, assignmentService, authorizer),
		api.NewMenuHandler(menuService, authorizer),
		api.NewAssignmentHandler(assignmentService),
		authService,
	)

	return &Server{
		cfg:    cfg,
		engine: engine,
		db:     db,
	}, nil
}

// Start starts the server
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
