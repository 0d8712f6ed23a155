package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/region-service/internal/config"
	"github.com/region-service/internal/pkg/logger"
	"github.com/region-service/internal/repository/cache"
	"github.com/region-service/internal/repository/postgres"
	redisRepo "github.com/region-service/internal/repository/redis"
	"github.com/region-service/internal/worker"
	"github.com/region-service/internal/worker/cleanup"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Region Cleanup Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

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

	// 5. Initialize repositories
	store := postgres.NewStore(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Initialize workers
	cleanupWorker := cleanup.NewRegionCleanupWorker(
		streamRepo,
		store,
		cacheRepo,
		nil, // у воркера нет HTTP для /metrics
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	workerManager := worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
	workerManager.Register(cleanupWorker)

	// 7. Start workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
