package database

import (
	"sync"

	"go.uber.org/zap"
)

// RedisStatus tracks whether the shared cache is currently usable. Readers that find it
// unhealthy skip Redis and use their local fallback instead of failing the request.
type RedisStatus struct {
	mu      sync.RWMutex
	healthy bool
	log     *zap.Logger
}

// NewRedisStatus starts in the healthy state, matching a successful connect at boot.
func NewRedisStatus(log *zap.Logger) *RedisStatus {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStatus{healthy: true, log: log}
}

// Healthy reports the last observed state. A nil receiver is never healthy.
func (s *RedisStatus) Healthy() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.healthy
}

// Update records a probe result and logs transitions only.
func (s *RedisStatus) Update(healthy bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.healthy == healthy {
		return
	}
	s.healthy = healthy
	if healthy {
		s.log.Info("redis status changed", zap.String("state", "available"))
	} else {
		s.log.Warn("redis status changed", zap.String("state", "unavailable"))
	}
}
