package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reviewminer/internal/api"
	"reviewminer/internal/config"
	"reviewminer/internal/database"
	"reviewminer/internal/logger"
	"reviewminer/internal/miner"
	"reviewminer/internal/processor"
	"reviewminer/internal/telemetry"
)

const defaultConfigPath = "config.yml"

func main() {
	cfg, err := config.Load(config.GetConfigPath(defaultConfigPath))
	if err != nil {
		// No logger yet, fall back to a default one for the failure report.
		logger.Must(logger.Config{}).Fatal("failed to load config", logger.Error(err))
	}

	log := logger.Must(cfg.Logging)
	defer func() { _ = log.Sync() }()

	log.Info("starting review miner",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	tel := telemetry.NewProvider()

	db, err := database.NewSQLiteConnection(cfg.Database)
	if err != nil {
		log.Fatal("failed to open database", logger.Error(err))
	}
	defer func() { _ = db.Close() }()
	log.Info("database ready", logger.String("path", cfg.Database.Path))

	runsRepo := database.NewRunsRepository(db)
	reviewsRepo := database.NewReviewsRepository(db)

	engine := miner.NewEngine(log, miner.Config{Version: cfg.Service.Version})
	batchProcessor := processor.NewBatchProcessor(engine, cfg.Service.Concurrency, log, tel)
	limiter := processor.NewRateLimiter(cfg.API.RateLimitRPS, cfg.API.RateLimitBurst, log)
	log.Info("mining engine ready",
		logger.Int("concurrency", batchProcessor.Concurrency()),
		logger.Int("max_batch_size", cfg.Service.MaxBatchSize),
	)

	handler := api.NewHandler(engine, batchProcessor, runsRepo, reviewsRepo, tel, cfg.Service.MaxBatchSize, log)
	server := api.NewServer(handler, limiter, api.ServerConfig{
		Port:         cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Debug:        cfg.Service.Debug,
	}, log)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Error("server error", logger.Error(err))
		os.Exit(1)
	case sig := <-shutdown:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", logger.Error(err))
			os.Exit(1)
		}
		log.Info("server stopped")
	}
}
