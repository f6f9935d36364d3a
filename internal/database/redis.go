package database

import (
	"context"
	"fmt"

	"go-gin-cinema-booking/config"

	"github.com/redis/go-redis/v9"
)

// InitRedis backs the payment intent registry, the pending-order snapshots
// and the confirmation stream.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr(), err)
	}
	return rdb, nil
}
