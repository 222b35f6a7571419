package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/expertgati/movers-web/internal/platform/config"
)

const redisPingTimeout = 2 * time.Second

// OpenRedis connects to Redis when an address is configured. It returns (nil, nil) when the
// cache is disabled so callers can fall back to in-process alternatives.
func OpenRedis(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	if !cfg.Enabled() {
		if log != nil {
			log.Info("redis disabled, using in-process cache")
		}
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Address, err)
	}

	if log != nil {
		log.Info("redis connected", zap.String("address", cfg.Address))
	}
	return rdb, nil
}
