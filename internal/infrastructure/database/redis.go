package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/flexdb/flexdb-server/internal/config"
)

// NewRedisClient connects to Redis for the schema cache. Returns nil when no
// address is configured; the cache then degrades to a pass-through.
func NewRedisClient(cfg *config.RedisConfig, log *zap.Logger) *redis.Client {
	if cfg.Addr == "" {
		log.Info("Redis not configured, schema cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Failed to connect to Redis, schema cache disabled", zap.Error(err))
		return nil
	}

	log.Info("Redis connected successfully", zap.String("addr", cfg.Addr))
	return client
}
