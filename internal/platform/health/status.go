package health

import (
	"sync"

	"go.uber.org/zap"
)

// State is the cache state as seen by the checker.
type State int

const (
	StateHealthy State = iota
	StateDegraded
	StateRebuilding
)

func (s State) String() string {
	switch s {
	case StateHealthy:
		return "healthy"
	case StateDegraded:
		return "degraded"
	case StateRebuilding:
		return "rebuilding"
	default:
		return "unknown"
	}
}

// tracker is the state machine behind Checker. A changed Redis run_id means the server
// restarted and lost its data, so derived keys must be rebuilt before the cache is trusted.
type tracker struct {
	mu        sync.RWMutex
	state     State
	lastRunID string
	log       *zap.Logger
}

func newTracker(log *zap.Logger) *tracker {
	return &tracker{state: StateHealthy, log: log}
}

func (t *tracker) current() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

func (t *tracker) setRunID(runID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastRunID = runID
}

// assess records a probe and reports whether a rebuild is needed.
func (t *tracker) assess(connected bool, runID string) (needsRebuild bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	restarted := t.lastRunID != "" && t.lastRunID != runID
	switch t.state {
	case StateHealthy:
		if !connected {
			t.transition(StateDegraded, zap.String("reason", "connection lost"))
		} else if restarted {
			t.transition(StateRebuilding, zap.String("old_run_id", t.lastRunID), zap.String("new_run_id", runID))
			needsRebuild = true
		}
	case StateDegraded:
		if connected {
			if restarted {
				t.transition(StateRebuilding, zap.String("old_run_id", t.lastRunID), zap.String("new_run_id", runID))
				needsRebuild = true
			} else {
				t.transition(StateHealthy, zap.String("reason", "connection restored"))
			}
		}
	case StateRebuilding:
		if !connected {
			t.transition(StateDegraded, zap.String("reason", "connection lost during rebuild"))
		} else {
			// The previous attempt failed; try again.
			needsRebuild = true
		}
	}

	if connected {
		t.lastRunID = runID
	}
	return needsRebuild
}

func (t *tracker) rebuilt(success bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateRebuilding {
		return
	}
	if success {
		t.transition(StateHealthy, zap.String("reason", "rebuild complete"))
	}
}

func (t *tracker) transition(next State, fields ...zap.Field) {
	t.log.Info("cache state changed",
		append([]zap.Field{zap.Stringer("from", t.state), zap.Stringer("to", next)}, fields...)...)
	t.state = next
}
