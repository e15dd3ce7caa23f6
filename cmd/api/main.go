package main

// @title City Boundary Service API
// @version 1.0.0
// @description Сервис восстановления и валидации границ городов из OpenStreetMap. Скачивает relation через Overpass, сшивает сегменты way в замкнутые полигоны, проверяет площадь против справочника и сохраняет результат в GeoJSON.
// @description
// @description Основные возможности:
// @description - Сшивка разрозненных сегментов в замкнутые кольца границы
// @description - Валидация площади с проверкой по ожидаемому значению
// @description - Поиск OSM relation города через Nominatim
// @description - Фоновая загрузка границ через Redis Streams
// @description - Статистика по загруженным границам

// @contact.name API Support
// @contact.email support@city-boundary-service.com

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

	_ "github.com/city-boundary-service/docs"
	"github.com/city-boundary-service/internal/config"
	httpDelivery "github.com/city-boundary-service/internal/delivery/http"
	"github.com/city-boundary-service/internal/delivery/http/handler"
	"github.com/city-boundary-service/internal/geometry"
	"github.com/city-boundary-service/internal/infrastructure/nominatim"
	"github.com/city-boundary-service/internal/infrastructure/overpass"
	"github.com/city-boundary-service/internal/pkg/logger"
	"github.com/city-boundary-service/internal/repository/cache"
	"github.com/city-boundary-service/internal/repository/postgres"
	redisRepo "github.com/city-boundary-service/internal/repository/redis"
	"github.com/city-boundary-service/internal/usecase"
	"github.com/city-boundary-service/internal/validation"
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

	log.Info("Starting City Boundary Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
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
	log.Info("PostgreSQL connected")

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
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	boundaryRepo := postgres.NewBoundaryRepository(db)
	referenceRepo := postgres.NewReferenceRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize external clients and geometry core
	overpassClient := overpass.NewOverpassClient(&cfg.Overpass, log)
	nominatimClient := nominatim.NewNominatimClient(&cfg.Nominatim, log)
	stitcher := geometry.NewStitcher(cfg.Validate.StitchTolerance)
	areaValidator := validation.NewAreaValidator(validation.DefaultThresholds())

	// 8. Initialize Use Cases
	pipelineUC := usecase.NewPipelineUseCase(
		overpassClient,
		nominatimClient,
		boundaryRepo,
		referenceRepo,
		cacheRepo,
		stitcher,
		areaValidator,
		log,
	)

	boundaryUC := usecase.NewBoundaryUseCase(
		boundaryRepo,
		referenceRepo,
		cacheRepo,
		streamRepo,
		log,
		cfg.Cache.BoundaryCacheTTL,
	)

	statsUC := usecase.NewStatsUseCase(
		boundaryRepo,
		cacheRepo,
		log,
		cfg.Cache.StatsCacheTTL,
	)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP Handlers
	boundaryHandler := handler.NewBoundaryHandler(boundaryUC, pipelineUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 10. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		boundaryHandler,
		statsHandler,
		db,
		redisClient,
	)

	log.Info("HTTP server initialized")

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Close database connection
	if err := db.Close(); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
