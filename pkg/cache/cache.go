package cache

import (
	"context"
	"time"

	"github.com/IgorEulalio/nmap-preflight/pkg/config"
)

type Cache interface {
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
}

func NewCacheFromConfig(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	if cfg.RedisConfig.Address != "" {
		return NewRedisCache(
			ctx,
			cfg.RedisConfig.Address,
			cfg.RedisConfig.Password,
			cfg.RedisConfig.DB,
		)
	}
	return NewLocalCache(cfg.LocalConfig.MaxSize), nil
}
