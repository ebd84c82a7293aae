// main.go
package main

import (
	"context"
	"log"
	"time"

	"servicehub/cmd"
	"servicehub/internal/data/repository"
	"servicehub/internal/wire"
	"servicehub/pkg/database"
	"servicehub/pkg/gateway"
	"servicehub/pkg/utils"

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

	// Connect to Redis (order intent store)
	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer rdb.Close()

	logger.Info("Redis connected successfully")

	// Payment gateway client
	gw := gateway.NewRazorpayGateway(config.Gateway, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, rdb, logger)

	// Seed the service catalog so pricing always resolves server side
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	services, offerings := repository.DefaultCatalog()
	if err := repos.Catalog.Seed(seedCtx, services, offerings); err != nil {
		logger.Fatal("Failed to seed catalog", zap.Error(err))
	}

	logger.Info("Catalog seeded",
		zap.Int("services", len(services)),
		zap.Int("offerings", len(offerings)),
	)

	// Wire all dependencies
	app := wire.Wiring(repos, config, gw, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
