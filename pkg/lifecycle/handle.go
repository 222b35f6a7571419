package lifecycle

import (
	"context"
	"time"
)

// Handle is given to one background service by a Manager.
type Handle struct {
	ctx context.Context
	// Close tells the Manager the service has finished. Safe to call more than once.
	Close func()
}

// Ctx returns the context cancelled on shutdown.
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done is closed when shutdown starts.
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err explains why Done was closed.
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep waits for d, returning early with the context error if shutdown starts first.
func (h *Handle) Sleep(d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-h.Done():
		return h.Err()
	case <-timer.C:
		return nil
	}
}
