package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/city-boundary-service/internal/config"
	"github.com/city-boundary-service/internal/geometry"
	"github.com/city-boundary-service/internal/infrastructure/nominatim"
	"github.com/city-boundary-service/internal/infrastructure/overpass"
	"github.com/city-boundary-service/internal/pkg/logger"
	"github.com/city-boundary-service/internal/repository/cache"
	"github.com/city-boundary-service/internal/repository/postgres"
	redisRepo "github.com/city-boundary-service/internal/repository/redis"
	"github.com/city-boundary-service/internal/usecase"
	"github.com/city-boundary-service/internal/validation"
	"github.com/city-boundary-service/internal/worker"
	"github.com/city-boundary-service/internal/worker/boundary"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
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

	log.Info("Starting Boundary Download Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.String("overpass_url", cfg.Overpass.URL),
		zap.Float64("stitch_tolerance", cfg.Validate.StitchTolerance))

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

	// 5. Initialize repositories and clients
	boundaryRepo := postgres.NewBoundaryRepository(db)
	referenceRepo := postgres.NewReferenceRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	overpassClient := overpass.NewOverpassClient(&cfg.Overpass, log)
	nominatimClient := nominatim.NewNominatimClient(&cfg.Nominatim, log)

	// 6. Initialize pipeline
	pipelineUC := usecase.NewPipelineUseCase(
		overpassClient,
		nominatimClient,
		boundaryRepo,
		referenceRepo,
		cacheRepo,
		geometry.NewStitcher(cfg.Validate.StitchTolerance),
		validation.NewAreaValidator(validation.DefaultThresholds()),
		log,
	)

	// 7. Initialize workers
	downloadWorker := boundary.NewDownloadWorker(
		streamRepo,
		pipelineUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(downloadWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
