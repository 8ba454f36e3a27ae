// Package platform defines the narrow contract the instruction VM requires
// from its host environment: a monotonic clock,
// interruptible sleep-until, mutex/condvar primitives, and a core count.
// Thread spawn/join is not part of it: the runtime starts and joins workers
// as goroutines directly. The VM only ever calls through the Platform interface;
// concrete adapters (Runtime, Deterministic) live in this package but are
// swappable the way the original sources swap in a QNX- or POSIX-specific
// lf_platform implementation.
package platform

import (
	"context"

	"github.com/lf-lang/pretvm-go/internal/pretvm/tag"
)

// Mutex is a non-reentrant lock with blocking Lock.
type Mutex interface {
	Lock()
	Unlock()
}

// Cond is a condition variable bound to a Mutex at construction, with both
// an unbounded Wait and an absolute-deadline WaitUntil.
type Cond interface {
	Wait()
	// WaitUntil blocks until Signal/Broadcast or deadline, whichever comes
	// first, and reports whether it returned because the deadline elapsed.
	// The caller must hold the bound mutex on entry and holds it again on
	// return, matching sync.Cond.Wait's contract.
	WaitUntil(deadline tag.Instant) (timedOut bool)
	Signal()
	Broadcast()
}

// Platform is the full contract the VM and its runtime depend on.
type Platform interface {
	// Now returns the current physical time, non-decreasing, nanosecond
	// resolution, shared epoch across all workers.
	Now() tag.Instant

	// Sleep blocks the calling goroutine for at least d.
	Sleep(d tag.Interval)

	// SleepUntil blocks until deadline or ctx cancellation, whichever comes
	// first. If deadline has already passed, it returns immediately. A nil
	// error means the deadline was reached; ctx.Err() is returned on
	// interruption.
	SleepUntil(ctx context.Context, deadline tag.Instant) error

	// NewMutex and NewCond construct platform-native synchronization
	// primitives for components that need them outside the VM's
	// register-file-mediated coordination. Neither the VM nor the runtime
	// calls them; the runtime joins its workers with a sync.WaitGroup.
	NewMutex() Mutex
	NewCond(m Mutex) Cond

	// CoreCount reports the number of available processors, for
	// right-sizing the worker pool.
	CoreCount() int
}
