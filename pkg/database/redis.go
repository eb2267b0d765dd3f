package database

import (
	"adaptivequiz/internal/config"
	"adaptivequiz/pkg/logger"
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects to Redis. An empty host disables the cache and
// returns a nil client.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	if cfg.Host == "" {
		logger.Log.Warn("Redis host not configured, course module cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Redis connection established")
	return rdb, nil
}
