package sitemap

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/expertgati/movers-web/internal/platform/database"
)

// Cache stores the rendered document. Get reports a miss with ok == false.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]memoryEntry{}, now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok || !m.now().Before(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expires: m.now().Add(ttl)}
}

func (m *MemoryCache) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// RedisCache prefers Redis and falls back to a MemoryCache while Redis is unhealthy.
type RedisCache struct {
	rdb      *redis.Client
	status   *database.RedisStatus
	fallback *MemoryCache
	log      *zap.Logger
}

func NewRedisCache(rdb *redis.Client, status *database.RedisStatus, log *zap.Logger) *RedisCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisCache{rdb: rdb, status: status, fallback: NewMemoryCache(), log: log}
}

func (r *RedisCache) usable() bool {
	return r.rdb != nil && r.status.Healthy()
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !r.usable() {
		return r.fallback.Get(ctx, key)
	}
	b, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("sitemap cache read failed", zap.String("key", key), zap.Error(err))
			return r.fallback.Get(ctx, key)
		}
		return nil, false
	}
	return b, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	r.fallback.Set(ctx, key, value, ttl)
	if !r.usable() {
		return
	}
	if err := r.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		r.log.Warn("sitemap cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *RedisCache) Delete(ctx context.Context, key string) {
	r.fallback.Delete(ctx, key)
	if !r.usable() {
		return
	}
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		r.log.Warn("sitemap cache delete failed", zap.String("key", key), zap.Error(err))
	}
}
