package main

// @title Location Registry API
// @version 1.0.0
// @description Реестр административно-территориального деления: провинции, районы, муниципалитеты и округа.
// @description
// @description Основные возможности:
// @description - Создание, частичное обновление, деактивация и повторная активация локаций
// @description - Поиск с фильтрами и выбором возвращаемых полей (fields)
// @description - Поиск в радиусе от точки
// @description - Статистика по локации и сводная статистика реестра
// @description - Журнал изменений

// @contact.name API Support
// @contact.email support@location-registry.dev

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

	"go.uber.org/zap"

	_ "github.com/location-registry/docs"
	"github.com/location-registry/internal/config"
	httpDelivery "github.com/location-registry/internal/delivery/http"
	"github.com/location-registry/internal/delivery/http/handler"
	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/domain/repository"
	"github.com/location-registry/internal/pkg/logger"
	"github.com/location-registry/internal/projection"
	"github.com/location-registry/internal/repository/cache"
	"github.com/location-registry/internal/repository/postgres"
	redisRepo "github.com/location-registry/internal/repository/redis"
	"github.com/location-registry/internal/usecase"
	"github.com/location-registry/internal/usecase/dto"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Location Registry")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("events_enabled", cfg.Events.Enabled),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
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
	hierarchyRepo := postgres.NewHierarchyRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	statsRepo := postgres.NewStatsRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)

	// публикация событий опциональна: без неё журнал изменений не пополняется
	var publisher repository.EventPublisher
	if cfg.Events.Enabled {
		publisher = redisRepo.NewStreamRepository(redisClient.Client(), cfg.Events.Stream, 0, log)
	}

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	provinceUC := usecase.NewLocationUseCase(
		projection.ProvinceCatalog(),
		postgres.NewProvinceRepository(db),
		hierarchyRepo, auditRepo, publisher, cfg.Search, log,
	)
	districtUC := usecase.NewLocationUseCase(
		projection.DistrictCatalog(),
		postgres.NewDistrictRepository(db),
		hierarchyRepo, auditRepo, publisher, cfg.Search, log,
	)
	municipalityUC := usecase.NewLocationUseCase(
		projection.MunicipalityCatalog(),
		postgres.NewMunicipalityRepository(db),
		hierarchyRepo, auditRepo, publisher, cfg.Search, log,
	)
	wardUC := usecase.NewLocationUseCase(
		projection.WardCatalog(),
		postgres.NewWardRepository(db),
		hierarchyRepo, auditRepo, publisher, cfg.Search, log,
	)

	statsUC := usecase.NewStatsUseCase(statsRepo, cacheRepo, cfg.Cache.StatsTTL, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	provinceHandler := handler.NewLocationHandler[*domain.Province](provinceUC,
		func() dto.CreateRequest[*domain.Province] { return &dto.CreateProvinceRequest{} },
		func() dto.UpdateRequest[*domain.Province] { return &dto.UpdateProvinceRequest{} },
		log,
	)
	districtHandler := handler.NewLocationHandler[*domain.District](districtUC,
		func() dto.CreateRequest[*domain.District] { return &dto.CreateDistrictRequest{} },
		func() dto.UpdateRequest[*domain.District] { return &dto.UpdateDistrictRequest{} },
		log,
	)
	municipalityHandler := handler.NewLocationHandler[*domain.Municipality](municipalityUC,
		func() dto.CreateRequest[*domain.Municipality] { return &dto.CreateMunicipalityRequest{} },
		func() dto.UpdateRequest[*domain.Municipality] { return &dto.UpdateMunicipalityRequest{} },
		log,
	)
	wardHandler := handler.NewLocationHandler[*domain.Ward](wardUC,
		func() dto.CreateRequest[*domain.Ward] { return &dto.CreateWardRequest{} },
		func() dto.UpdateRequest[*domain.Ward] { return &dto.UpdateWardRequest{} },
		log,
	)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		map[string]httpDelivery.HealthCheck{
			"database": db.Health,
			"redis":    redisClient.Health,
		},
		statsHandler,
		provinceHandler,
		districtHandler,
		municipalityHandler,
		wardHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
