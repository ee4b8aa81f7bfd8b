// main.go
package main

import (
	"log"

	"salon-booking/cmd"
	"salon-booking/internal/data/cache"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/wire"
	rediscache "salon-booking/pkg/cache"
	"salon-booking/pkg/database"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to redis; availability caching degrades to recompute
	// when no address is configured
	redisClient, err := rediscache.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("Redis connected successfully")
	} else {
		logger.Info("Redis not configured, availability cache disabled")
	}

	availCache := cache.NewAvailabilityCache(redisClient, config.Scheduling.CacheTTLSeconds, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, availCache, config, logger)

	// Start the hold expiry sweeper
	scheduler, err := app.Sweeper.Start()
	if err != nil {
		logger.Fatal("Failed to start hold sweeper", zap.Error(err))
	}
	defer scheduler.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}
