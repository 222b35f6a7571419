package shutdown

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/expertgati/movers-web/pkg/lifecycle"
)

func TestShutdownStopsServicesThenClosers(t *testing.T) {
	log := zap.NewNop()
	mgr := lifecycle.NewManager(log)

	h, err := mgr.NewServiceHandle("worker")
	require.NoError(t, err)
	_, err = mgr.NewServiceHandle("worker")
	require.Error(t, err)

	stopped := make(chan struct{})
	go func() {
		defer h.Close()
		<-h.Done()
		close(stopped)
	}()

	var order []string
	c := NewCoordinator(mgr, log,
		func() error {
			select {
			case <-stopped:
				order = append(order, "db")
			default:
				order = append(order, "db-too-early")
			}
			return nil
		},
		func() error {
			order = append(order, "cache")
			return errors.New("already closed")
		},
	)
	c.Shutdown(nil)

	require.Equal(t, []string{"db", "cache"}, order)
}
