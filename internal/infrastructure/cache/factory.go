package cache

import (
	"github.com/buildingcarbon/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewResolutionCache creates a Redis-backed cache when Redis is reachable and
// falls back to the in-memory cache otherwise. Status reads degrade to the
// metrics store either way, so an unreachable Redis is a warning, not a
// startup failure.
func NewResolutionCache(cfg config.RedisConfig, logger *zap.Logger) ResolutionCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	redisCache, err := NewRedisResolutionCache(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory resolution cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err))
		return NewInMemoryResolutionCache()
	}

	logger.Info("using Redis resolution cache", zap.String("addr", cfg.Addr()))
	return redisCache
}
