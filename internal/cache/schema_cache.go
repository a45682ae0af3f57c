package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/flexdb/flexdb-server/internal/domain/model"
)

const (
	schemaCacheKey = "flexdb:schema:fields"
	// schemaCacheTTL bounds how long a stale schema can survive a failed
	// invalidation after a mutation.
	schemaCacheTTL = 5 * time.Minute
)

// SchemaCache keeps the ordered field list in Redis so that schema reads do
// not hit the document store on every request. A nil cache (or a cache
// without a client) is a valid no-op instance; every schema mutation must
// call Invalidate.
type SchemaCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSchemaCache creates a new schema cache. The client may be nil, in which
// case every lookup is a miss.
func NewSchemaCache(client *redis.Client, logger *zap.Logger) *SchemaCache {
	return &SchemaCache{
		client: client,
		logger: logger,
	}
}

// Get returns the cached field list and whether the cache held one.
func (c *SchemaCache) Get(ctx context.Context) ([]model.FieldDefinition, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, schemaCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Failed to read schema cache", zap.Error(err))
		}
		return nil, false
	}

	var fields []model.FieldDefinition
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		c.logger.Warn("Failed to decode cached schema", zap.Error(err))
		return nil, false
	}

	return fields, true
}

// Set stores the field list. Failures are logged and swallowed; the cache is
// an optimization, never a source of truth.
func (c *SchemaCache) Set(ctx context.Context, fields []model.FieldDefinition) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(fields)
	if err != nil {
		c.logger.Warn("Failed to encode schema for cache", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, schemaCacheKey, data, schemaCacheTTL).Err(); err != nil {
		c.logger.Warn("Failed to write schema cache", zap.Error(err))
	}
}

// Invalidate drops the cached field list.
func (c *SchemaCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, schemaCacheKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate schema cache", zap.Error(err))
	}
}
