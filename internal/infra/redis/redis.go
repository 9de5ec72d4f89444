package redis

import (
	"sync"

	radix "github.com/mediocregopher/radix/v3"
	"go.uber.org/zap"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
)

var (
	client radix.Client
	once   sync.Once
)

// Init opens the shared Redis pool used by the token cache. Redis being
// down is not fatal: callers receive nil and run uncached.
func Init(cfg *config.RedisConfig) radix.Client {
	once.Do(func() {
		pool, err := radix.NewPool("tcp", cfg.Addr, 10)
		if err != nil {
			zap.L().Warn("redis unavailable, token cache disabled", zap.Error(err))
			return
		}
		client = pool
	})
	return client
}

// Client returns the shared pool, nil when Redis was unreachable.
func Client() radix.Client {
	return client
}
