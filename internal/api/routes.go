// Package api contains the API routes for the LostnLocal API
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/lostnlocal/lostnlocalapi/internal/api/handlers"
	"github.com/lostnlocal/lostnlocalapi/internal/api/middleware"
	"github.com/lostnlocal/lostnlocalapi/internal/config"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/lostnlocal/lostnlocalapi/internal/service"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/response"
)

// SetupRoutes configures the routes for the API
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *gorm.DB, redisClient *redis.Client) {
	// Shared services
	hasher := service.NewPasswordHasher(cfg.HashCost())
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())
	sessions := service.NewSessionService(db, redisClient, cfg.TokenTTL())
	users := repository.NewUserRepository(db)
	authService := service.NewAuthService(users, sessions, hasher, tokens, cfg.AdminSignupCode)
	limiter := service.NewRateLimitService(db)
	catalogService := service.NewCatalogService(db)
	gemService := service.NewGemService(db)
	contactService := service.NewContactService(db)

	e.Use(middleware.MetricsMiddleware())

	// Create a group for all API routes
	api := e.Group("/api")

	// Index and health routes
	indexHandler := handlers.NewIndexHandler(cfg, db, redisClient)
	api.GET("/", indexHandler.Index)
	api.GET("/health", indexHandler.Health)

	// Auth routes
	authHandler := handlers.NewAuthHandler(cfg, authService, limiter)
	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, middleware.AuthMiddleware(authService))
	authGroup.GET("/profile", authHandler.GetProfile, middleware.AuthMiddleware(authService))
	authGroup.PUT("/profile", authHandler.UpdateProfile, middleware.AuthMiddleware(authService))
	authGroup.PUT("/change-password", authHandler.ChangePassword, middleware.AuthMiddleware(authService))

	// Catalog routes (public reads)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	api.GET("/destinations", catalogHandler.GetDestinations)
	api.GET("/hotels", catalogHandler.GetHotels)
	api.GET("/cultural-insights", catalogHandler.GetCulturalInsights)

	// Hidden gem routes
	gemHandler := handlers.NewGemHandler(gemService)
	api.GET("/hidden-gems", gemHandler.GetHiddenGems)
	api.POST("/hidden-gems", gemHandler.SubmitHiddenGem, middleware.AuthMiddleware(authService))

	// Contact route (auth optional)
	contactHandler := handlers.NewContactHandler(contactService)
	api.POST("/contact", contactHandler.SubmitContact, middleware.OptionalAuthMiddleware(authService))

	// Admin routes
	adminHandler := handlers.NewAdminHandler(gemService, authService)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(authService))
	adminGroup.Use(middleware.AdminMiddleware())
	adminGroup.GET("/pending-gems", adminHandler.GetPendingGems)
	adminGroup.PUT("/approve-gem/:id", adminHandler.ApproveGem)
	adminGroup.DELETE("/reject-gem/:id", adminHandler.RejectGem)
	adminGroup.PUT("/users/:id/role", adminHandler.SetUserRole)

	// Prometheus exposition
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Unknown API paths get the envelope, not the echo default
	echo.NotFoundHandler = func(c echo.Context) error {
		return response.ErrorResponse(c, http.StatusNotFound, "Endpoint not found")
	}
	echo.MethodNotAllowedHandler = func(c echo.Context) error {
		return response.ErrorResponse(c, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
