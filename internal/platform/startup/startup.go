package startup

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Migrator creates or updates one store's tables.
type Migrator interface {
	Migrate() error
}

// Invalidator drops a derived cache entry.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Warmer reloads derived cache state from the database.
type Warmer interface {
	WarmLimiter(ctx context.Context) error
}

// Initializer runs the boot sequence and the runtime cache rebuild.
type Initializer struct {
	Migrators []Migrator
	Sitemap   Invalidator
	Leads     Warmer
	Log       *zap.Logger
}

// InitializeApplication migrates every store and primes the caches.
func (i *Initializer) InitializeApplication(ctx context.Context) error {
	i.Log.Info("initializing application")
	for _, m := range i.Migrators {
		if err := m.Migrate(); err != nil {
			return err
		}
	}
	if err := i.RebuildCache(ctx); err != nil {
		// Caches rebuild on the next health check; a cold cache is not fatal.
		i.Log.Warn("initial cache rebuild failed", zap.Error(err))
	}
	i.Log.Info("application initialized")
	return nil
}

// RebuildCache restores everything the application keeps in Redis. The health checker calls
// it after a Redis restart.
func (i *Initializer) RebuildCache(ctx context.Context) error {
	if i.Sitemap != nil {
		i.Sitemap.Invalidate(ctx)
	}
	if i.Leads != nil {
		if err := i.Leads.WarmLimiter(ctx); err != nil {
			return fmt.Errorf("rebuild ip limiter: %w", err)
		}
	}
	i.Log.Info("cache rebuilt")
	return nil
}
