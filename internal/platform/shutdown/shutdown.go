package shutdown

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/expertgati/movers-web/pkg/lifecycle"
)

const (
	httpTimeout       = 15 * time.Second
	backgroundTimeout = 10 * time.Second
)

// Coordinator orders the shutdown: HTTP first, then background services, then resources.
type Coordinator struct {
	manager *lifecycle.Manager
	closers []func() error
	log     *zap.Logger
}

// NewCoordinator runs closers last, in the order given.
func NewCoordinator(manager *lifecycle.Manager, log *zap.Logger, closers ...func() error) *Coordinator {
	return &Coordinator{manager: manager, closers: closers, log: log}
}

// ListenForSignalsAndShutdown blocks until SIGINT/SIGTERM or a server failure, then shuts
// everything down. serverErr receives the result of ListenAndServe.
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server, serverErr <-chan error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		c.log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			c.log.Error("http server stopped", zap.Error(err))
		}
	}
	c.Shutdown(server)
}

// Shutdown performs the ordered shutdown without waiting for a signal.
func (c *Coordinator) Shutdown(server *http.Server) {
	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), httpTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			c.log.Error("http server shutdown", zap.Error(err))
		} else {
			c.log.Info("http server stopped")
		}
	}

	if c.manager != nil {
		c.manager.Shutdown()
		if remaining := c.manager.WaitWithTimeout(backgroundTimeout); len(remaining) > 0 {
			c.log.Warn("background services did not stop in time", zap.Strings("services", remaining))
		} else {
			c.log.Info("background services stopped")
		}
	}

	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.log.Error("release resource", zap.Error(err))
		}
	}
	c.log.Info("shutdown complete")
}
