// Package main is the entry point for the LostnLocal API
package main

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/lostnlocal/lostnlocalapi/internal/api"
	"github.com/lostnlocal/lostnlocalapi/internal/api/middleware"
	"github.com/lostnlocal/lostnlocalapi/internal/config"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/lostnlocal/lostnlocalapi/internal/service"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/metrics"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
)

func main() {
	// Load configuration
	cfg, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Print the configuration
	fmt.Println(cfg.String())

	// Setup logger
	defer zaplogger.Sync()
	zaplogger.SetLogLevel(cfg.ServerLogLevel)

	// Connect to Postgres
	db, err := repository.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}

	// Connect Redis (optional)
	redisClient, err := repository.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// startUpMessage
	zaplogger.Info(cfg.APIName + " - " + cfg.APIVersion + " initialized")
	zaplogger.Info("Postgres initialized")
	if redisClient != nil {
		zaplogger.Info("Redis initialized")
	} else {
		zaplogger.Info("Redis disabled, session registry runs against Postgres only")
	}

	// Register Prometheus collectors
	metrics.MustRegister()

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Setup middleware
	middleware.SetupLoggerMiddleware(e)

	// Setup routes
	api.SetupRoutes(e, cfg, db, redisClient)

	// Setup and start cron jobs
	cronService := service.NewCronService(cfg, db)
	cronService.Start()

	// Start the server
	startServer(e, cfg)
}

// startServer starts the Echo server on the specified port
func startServer(e *echo.Echo, cfg *config.Config) {
	port := cfg.ServerPort
	if port == "" {
		port = "3008"
	}
	zaplogger.Info("SERVER STARTED ON PORT " + port)
	e.Logger.Fatal(e.Start(":" + port))
}
