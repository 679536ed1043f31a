package cache

import (
	"fmt"

	"finance-tracker/internal/config"
)

// NewFromConfig builds the configured report cache wrapped in a
// ResilientLayer. It returns nil when caching is disabled.
func NewFromConfig(cfg *config.Config) (Layer, error) {
	var layer Layer

	switch cfg.Cache.Backend {
	case config.CacheBackendNone, "":
		return nil, nil
	case config.CacheBackendMemory:
		layer = NewMemoryCache(0)
	case config.CacheBackendRedis:
		redisCache, err := NewRedisCache(RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		layer = redisCache
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	resilientCfg := DefaultResilientConfig()
	resilientCfg.Timeout = cfg.Cache.Timeout

	return NewResilientLayer(layer, resilientCfg), nil
}
