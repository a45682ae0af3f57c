package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/flexdb/flexdb-server/internal/config"
	"github.com/flexdb/flexdb-server/internal/infrastructure/database"
	httpServer "github.com/flexdb/flexdb-server/internal/infrastructure/http"
	"github.com/flexdb/flexdb-server/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Output:   cfg.Log.Output,
		FilePath: cfg.Log.FilePath,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize MongoDB connection
	client, err := database.NewMongoConnection(&cfg.Database.MongoDB, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := database.Close(client, zapLogger); err != nil {
			zapLogger.Error("Failed to close MongoDB connection", zap.Error(err))
		}
	}()

	// Optional Redis client for the schema cache
	cacheClient := database.NewRedisClient(&cfg.Database.Redis, zapLogger)

	// Initialize repositories
	db := client.Database(cfg.Database.MongoDB.Database)
	repos := database.NewRepositories(db, zapLogger)

	// Initialize HTTP server
	httpSrv := httpServer.NewServer(cfg, zapLogger, repos, cacheClient)

	go func() {
		if err := httpSrv.Start(); err != nil {
			if err.Error() != "http: Server closed" {
				zapLogger.Fatal("HTTP server error", zap.Error(err))
			}
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		zapLogger.Info("HTTP server shutdown gracefully")
	}

	zapLogger.Info("Server exited")
}
