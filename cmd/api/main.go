package main

// @title Region Service API
// @version 1.0.0
// @description Пользователи и их регионы (именованные точки) с геозапросами.
// @description
// @description Основные возможности:
// @description - CRUD пользователей; адрес и координаты дополняют друг друга через геокодер
// @description - CRUD регионов без дубликатов (владелец, имя, координаты)
// @description - Регионы в точке и в радиусе

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/region-service/docs/swagger"
	"github.com/region-service/internal/config"
	httpDelivery "github.com/region-service/internal/delivery/http"
	"github.com/region-service/internal/delivery/http/handler"
	"github.com/region-service/internal/infrastructure/opencage"
	"github.com/region-service/internal/metrics"
	"github.com/region-service/internal/pkg/logger"
	"github.com/region-service/internal/repository/cache"
	"github.com/region-service/internal/repository/postgres"
	redisRepo "github.com/region-service/internal/repository/redis"
	"github.com/region-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Region Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("geocoder_enabled", cfg.Geocoder.Enabled()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := db.Migrate(ctx)
		cancel()
		if err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Metrics
	collector, err := metrics.New(nil)
	if err != nil {
		log.Fatal("Failed to register metrics", zap.Error(err))
	}

	// 6. Initialize repositories
	store := postgres.NewStore(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// Без ключа геокодера пользователи сохраняются как есть
	var resolver usecase.LocationResolver
	if cfg.Geocoder.Enabled() {
		geocoder := opencage.NewOpenCageClient(&cfg.Geocoder, collector, log)
		resolver = usecase.NewGeoResolver(geocoder, log)
	} else {
		log.Warn("Geocoder API key is not set, location resolution is disabled")
	}

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	userUC := usecase.NewUserUseCase(store, cacheRepo, resolver, cfg.Cache.UserCacheTTL, collector, log)
	regionUC := usecase.NewRegionUseCase(store, cacheRepo, streamRepo, collector, log)
	geoUC := usecase.NewGeoQueryUseCase(store.Regions(), log)

	// 8. Initialize HTTP handlers and server
	server := httpDelivery.NewServer(cfg, log, collector, httpDelivery.Handlers{
		User:    handler.NewUserHandler(userUC, log),
		Region:  handler.NewRegionHandler(regionUC, geoUC, log),
		Geocode: handler.NewGeocodeHandler(resolver, log),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": db.Health,
			"redis":    redisClient.Health,
		}, log),
	})

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
