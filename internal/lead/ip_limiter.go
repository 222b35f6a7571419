package lead

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/expertgati/movers-web/internal/platform/database"
)

const (
	ipKeyPrefix = "lead_ips:"
	ipWindow    = 24 * time.Hour
	// ipKeyTTL outlives the window slightly so a key never expires mid-window.
	ipKeyTTL = 25 * time.Hour
)

// ErrLimiterUnavailable means the counter could not be consulted. Callers accept the
// submission rather than lose a lead.
var ErrLimiterUnavailable = errors.New("lead: ip limiter unavailable")

// IPLimiter counts submissions per client IP over a rolling day in a Redis sorted set. Each
// submission is one member scored by its time in microseconds.
type IPLimiter struct {
	rdb    *redis.Client
	status *database.RedisStatus
	log    *zap.Logger

	// Increments share the read side; Rebuild takes the write side while it swaps keys.
	mu sync.RWMutex
}

func NewIPLimiter(rdb *redis.Client, status *database.RedisStatus, log *zap.Logger) *IPLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &IPLimiter{rdb: rdb, status: status, log: log}
}

// Reservation is one counted submission. Unless Commit is called, Release removes it again.
type Reservation struct {
	limiter   *IPLimiter
	key       string
	member    string
	committed bool
}

// Increment records a submission for ip at t and returns the number of submissions in the
// trailing window, this one included. The returned Reservation holds the limiter's read lock
// until Release.
func (l *IPLimiter) Increment(ctx context.Context, ip string, t time.Time) (int64, *Reservation, error) {
	if net.ParseIP(ip) == nil {
		return 0, nil, fmt.Errorf("invalid client ip %q", ip)
	}
	member, err := memberID(t)
	if err != nil {
		return 0, nil, fmt.Errorf("generate member id: %w", err)
	}

	l.mu.RLock()
	if l.rdb == nil || !l.status.Healthy() {
		l.mu.RUnlock()
		return 0, nil, ErrLimiterUnavailable
	}

	key := ipKeyPrefix + ip
	floor := float64(t.Add(-ipWindow).UnixMicro())

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("(%f", floor))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(t.UnixMicro()), Member: member})
	pipe.Expire(ctx, key, ipKeyTTL)
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		l.mu.RUnlock()
		return 0, nil, fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
	}

	count, err := countCmd.Result()
	if err != nil {
		l.rdb.ZRem(ctx, key, member)
		l.mu.RUnlock()
		return 0, nil, fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
	}
	return count, &Reservation{limiter: l, key: key, member: member}, nil
}

// Commit keeps the counted submission.
func (r *Reservation) Commit() { r.committed = true }

// Release drops the lock and, when the submission was not committed, un-counts it.
func (r *Reservation) Release(ctx context.Context) {
	l := r.limiter
	defer l.mu.RUnlock()

	if r.committed {
		return
	}
	if err := l.rdb.ZRem(ctx, r.key, r.member).Err(); err != nil {
		l.log.Error("ip limiter compensation failed",
			zap.String("key", r.key), zap.String("member", r.member), zap.Error(err))
	}
}

// Rebuild replaces every counter with the given hits, which should cover the trailing window.
// It runs at startup so the limit survives a cache flush.
func (l *IPLimiter) Rebuild(ctx context.Context, hits []IPHit) error {
	if l.rdb == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	grouped := make(map[string][]redis.Z)
	for _, h := range hits {
		if h.IPAddress == "" {
			continue
		}
		member, err := memberID(h.CreatedAt)
		if err != nil {
			return fmt.Errorf("generate member id: %w", err)
		}
		key := ipKeyPrefix + h.IPAddress
		grouped[key] = append(grouped[key], redis.Z{Score: float64(h.CreatedAt.UnixMicro()), Member: member})
	}

	if err := deleteKeysByPrefix(ctx, l.rdb, ipKeyPrefix); err != nil {
		return fmt.Errorf("clear ip counters: %w", err)
	}
	if len(grouped) == 0 {
		return nil
	}

	pipe := l.rdb.Pipeline()
	for key, members := range grouped {
		pipe.ZAdd(ctx, key, members...)
		pipe.Expire(ctx, key, ipKeyTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("restore ip counters: %w", err)
	}
	l.log.Info("ip limiter rebuilt", zap.Int("ips", len(grouped)), zap.Int("submissions", len(hits)))
	return nil
}

func deleteKeysByPrefix(ctx context.Context, rdb *redis.Client, prefix string) error {
	var cursor uint64
	for {
		keys, next, err := rdb.Scan(ctx, cursor, prefix+"*", 500).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// memberID is 8 bytes of big-endian nanoseconds followed by 8 random bytes, base64url encoded.
func memberID(t time.Time) (string, error) {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[:8], uint64(t.UnixNano()))
	if _, err := rand.Read(b[8:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
