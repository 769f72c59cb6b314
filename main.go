// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"movie-review/cmd"
	"movie-review/internal/data/repository"
	"movie-review/internal/usecase"
	"movie-review/internal/wire"
	"movie-review/pkg/cache"
	"movie-review/pkg/database"
	"movie-review/pkg/metrics"
	"movie-review/pkg/omdb"
	"movie-review/pkg/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	repos := repository.NewRepository(db, logger)

	registry := metrics.NewRegistry()
	m := metrics.New(registry)

	// Redis is optional, movie lookups fall back to no caching
	movieCache := cache.NewNoop()
	if config.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, movie cache disabled", zap.Error(err))
		} else {
			movieCache = cache.NewRedisCache(client, "movie-review:", m.Cache)
			logger.Info("Redis cache enabled", zap.String("addr", config.Redis.Addr))
		}
	}
	defer movieCache.Close()

	if config.OMDB.APIKey == "" {
		logger.Warn("OMDB_API_KEY is not set, movie lookups will fail")
	}

	deps := usecase.Dependencies{
		Clock:   clockwork.NewRealClock(),
		Tokens:  utils.NewTokenIssuer(config.JWT),
		Movies:  omdb.NewClient(config.OMDB, m.Breaker, logger),
		Cache:   movieCache,
		Metrics: m,
	}

	// Wire all dependencies
	app := wire.Wiring(repos, deps, wire.Infra{DB: db, Registry: registry}, config, logger)

	if config.App.SeedDefaultUser {
		if err := app.Service.Auth.EnsureDefaultUser(ctx); err != nil {
			logger.Fatal("Failed to seed default user", zap.Error(err))
		}
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
