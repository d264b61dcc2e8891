package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/location-registry/internal/config"
	"github.com/location-registry/internal/pkg/logger"
	"github.com/location-registry/internal/repository/cache"
	"github.com/location-registry/internal/repository/postgres"
	redisRepo "github.com/location-registry/internal/repository/redis"
	"github.com/location-registry/internal/worker"
	"github.com/location-registry/internal/worker/audit"
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
	log, err := logger.New(cfg.Log.Level, "worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Location Audit Worker")
	log.Info("Configuration loaded",
		zap.String("stream", cfg.Events.Stream),
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("read_timeout", cfg.Worker.StreamReadTimeout))

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
	redisClient, err := cache.NewRedis(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	auditRepo := postgres.NewAuditRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(
		redisClient.Client(),
		cfg.Events.Stream,
		cfg.Worker.StreamReadTimeout,
		log,
	)

	// 6. Initialize workers
	auditWorker := audit.NewAuditWorker(
		streamRepo,
		auditRepo,
		cacheRepo,
		audit.Config{
			Stream:        cfg.Events.Stream,
			ConsumerGroup: cfg.Worker.ConsumerGroup,
			BatchSize:     cfg.Worker.BatchSize,
			MaxRetries:    cfg.Worker.MaxRetries,

			PendingIdle:     cfg.Worker.PendingIdle,
			PendingInterval: cfg.Worker.PendingInterval,
		},
		log,
	)

	// 7. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log, worker.WithShutdownTimeout(cfg.Worker.ShutdownTimeout))
	workerManager.Register(auditWorker)

	// метрики воркера отдаются отдельным listener, HTTP API у воркера нет
	var metricsServer *http.Server
	if cfg.Worker.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{Addr: cfg.Worker.MetricsAddr, Handler: mux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server failed", zap.Error(err))
			}
		}()
		log.Info("Metrics server started", zap.String("address", cfg.Worker.MetricsAddr))
	}

	// 8. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-workerManager.Done():
		log.Warn("All workers exited", zap.Any("states", workerManager.States()))
	}

	cancel()

	if metricsServer != nil {
		if err := metricsServer.Close(); err != nil {
			log.Error("Failed to close metrics server", zap.Error(err))
		}
	}

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
