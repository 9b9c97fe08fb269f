package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"furniture-search-api/internal/models"
)

// Redis is the Store backed by a Redis instance, for deployments where
// several replicas should share one result cache. Expiry is delegated
// to Redis key TTLs.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	ctx    context.Context
	logger *zap.Logger
}

func NewRedis(url string, ttl time.Duration, logger *zap.Logger) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("redis cache connected", zap.Duration("ttl", ttl))

	return &Redis{
		client: client,
		ttl:    ttl,
		ctx:    ctx,
		logger: logger,
	}, nil
}

func (r *Redis) Get(key string) (*models.SearchResult, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		r.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var result models.SearchResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		r.logger.Warn("redis entry unmarshal failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return &result, true
}

func (r *Redis) Set(key string, result *models.SearchResult) {
	data, err := json.Marshal(result)
	if err != nil {
		r.logger.Warn("redis entry marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := r.client.Set(r.ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *Redis) Flush() error {
	return r.client.FlushDB(r.ctx).Err()
}

func (r *Redis) Stats() map[string]interface{} {
	keys, err := r.client.Keys(r.ctx, "search:*").Result()
	if err != nil {
		keys = nil
	}

	return map[string]interface{}{
		"backend":     "redis",
		"keys":        len(keys),
		"ttl_seconds": int(r.ttl.Seconds()),
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
