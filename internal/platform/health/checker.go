package health

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/expertgati/movers-web/internal/platform/database"
	"github.com/expertgati/movers-web/pkg/lifecycle"
)

const (
	defaultInterval = 5 * time.Second
	pingTimeout     = 2 * time.Second
)

var runIDPattern = regexp.MustCompile(`run_id:([a-f0-9]+)`)

// RebuildFunc restores the keys the application derives from the database.
type RebuildFunc func(ctx context.Context) error

// Checker polls Redis, keeps a database.RedisStatus current and triggers a rebuild when the
// server restarts underneath the application.
type Checker struct {
	rdb      *redis.Client
	status   *database.RedisStatus
	rebuild  RebuildFunc
	interval time.Duration
	log      *zap.Logger
	tr       *tracker
}

func NewChecker(rdb *redis.Client, status *database.RedisStatus, interval time.Duration, rebuild RebuildFunc, log *zap.Logger) *Checker {
	if interval <= 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{
		rdb:      rdb,
		status:   status,
		rebuild:  rebuild,
		interval: interval,
		log:      log,
		tr:       newTracker(log),
	}
}

// Init records the run_id seen at boot.
func (c *Checker) Init(ctx context.Context) error {
	runID, err := c.runID(ctx)
	if err != nil {
		return err
	}
	c.tr.setRunID(runID)
	c.log.Info("redis run id recorded", zap.String("run_id", runID))
	return nil
}

// State reports the cache state. A checker without Redis is always degraded.
func (c *Checker) State() State {
	if c == nil || c.rdb == nil {
		return StateDegraded
	}
	return c.tr.current()
}

// Check runs one probe and, when needed, one rebuild.
func (c *Checker) Check(ctx context.Context) {
	runID, err := c.runID(ctx)
	if !c.tr.assess(err == nil, runID) {
		c.status.Update(c.tr.current() == StateHealthy)
		return
	}

	c.status.Update(false)
	ok := c.runRebuild(ctx, runID)
	c.tr.rebuilt(ok)
	c.status.Update(ok)
}

// runRebuild succeeds only if Redis did not restart again while it ran.
func (c *Checker) runRebuild(ctx context.Context, before string) bool {
	if c.rebuild != nil {
		if err := c.rebuild(ctx); err != nil {
			c.log.Error("cache rebuild failed", zap.Error(err))
			return false
		}
	}
	after, err := c.runID(ctx)
	if err != nil {
		c.log.Warn("redis unreachable after rebuild", zap.Error(err))
		return false
	}
	if after != before {
		c.log.Warn("redis restarted during rebuild", zap.String("before", before), zap.String("after", after))
		return false
	}
	return true
}

// Run polls until the handle is shut down.
func (c *Checker) Run(h *lifecycle.Handle) {
	defer h.Close()
	c.log.Info("redis health checker started", zap.Duration("interval", c.interval))
	for {
		if err := h.Sleep(c.interval); err != nil {
			c.log.Info("redis health checker stopped")
			return
		}
		c.Check(h.Ctx())
	}
}

func (c *Checker) runID(ctx context.Context) (string, error) {
	if c.rdb == nil {
		return "", errors.New("redis disabled")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	info, err := c.rdb.Info(ctx, "server").Result()
	if err != nil {
		return "", err
	}
	m := runIDPattern.FindStringSubmatch(info)
	if len(m) < 2 {
		return "", errors.New("run_id missing from INFO server")
	}
	return m[1], nil
}
