package worker

import "sync/atomic"

// Worker is a scheduled background job. Execute must be re-entry safe: a
// tick that fires while the previous run is still going returns immediately.
type Worker interface {
	Schedule() string
	Execute()
}

// runGuard is the single-flight gate workers embed. tryAcquire flips the
// busy flag atomically, so there is no window between checking and running.
type runGuard struct {
	busy atomic.Bool
}

func (g *runGuard) tryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *runGuard) release() {
	g.busy.Store(false)
}
