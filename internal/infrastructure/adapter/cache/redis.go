package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
)

// NewRedisClient configures a Redis client and verifies connectivity
func NewRedisClient(ctx context.Context, url string, logger coreport.Logger) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url is required")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("Connected to redis", map[string]any{
		"addr": opt.Addr,
	})
	return client, nil
}
