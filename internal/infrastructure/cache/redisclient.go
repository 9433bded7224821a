package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/smartcheckin/smartcheckin/internal/shared/config"
)

// NewRedisClient creates a client and verifies the connection.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.GetAddr(), err)
	}
	return client, nil
}
