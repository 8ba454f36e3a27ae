package platform

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/lf-lang/pretvm-go/internal/pretvm/tag"
	"github.com/shirou/gopsutil/v3/cpu"
)

// Runtime is the production Platform adapter: real wall-clock time, real
// goroutine-parking sleeps, and sync.Mutex/sync.Cond-backed primitives. It
// plays the role the QNX adapter (lf_qnx_support.c) plays in the original
// sources — one concrete binding of the platform contract — except it
// targets the Go scheduler instead of POSIX threads.
type Runtime struct {
	epoch time.Time
}

// NewRuntime constructs a Runtime whose epoch is the moment of
// construction, matching start_time in the original tag.c.
func NewRuntime() *Runtime {
	return &Runtime{epoch: time.Now()}
}

// Now reports nanoseconds elapsed since the Runtime's epoch. time.Since
// uses the monotonic reading embedded in time.Time, so this is immune to
// wall-clock adjustments.
func (r *Runtime) Now() tag.Instant {
	return tag.Instant(time.Since(r.epoch).Nanoseconds())
}

// Sleep blocks for at least d.
func (r *Runtime) Sleep(d tag.Interval) {
	if d <= 0 {
		return
	}
	time.Sleep(time.Duration(d))
}

// SleepUntil blocks until deadline (relative to r.epoch) or ctx
// cancellation. A clock read failure has no analogue in Go's time package,
// so unlike the C platform layer there is no "treat as deadline already
// reached" fallback to implement here; the conservative behavior falls out
// naturally from deadline<=now returning immediately below.
func (r *Runtime) SleepUntil(ctx context.Context, deadline tag.Instant) error {
	interval := deadline - r.Now()
	if interval <= 0 {
		return nil
	}
	timer := time.NewTimer(time.Duration(interval))
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewMutex returns a sync.Mutex-backed Mutex.
func (r *Runtime) NewMutex() Mutex { return &mutex{} }

// NewCond returns a Cond built on sync.Cond, with WaitUntil implemented via
// a timer goroutine since sync.Cond has no native timed wait.
func (r *Runtime) NewCond(m Mutex) Cond {
	rm, ok := m.(*mutex)
	if !ok {
		rm = &mutex{}
	}
	return &cond{cond: sync.NewCond(&rm.mu), platform: r}
}

// CoreCount reports the number of logical processors, preferring gopsutil's
// cross-platform probe (it distinguishes physical vs. logical cores and
// works uniformly across the OSes the original platform layer targets) and
// falling back to runtime.NumCPU if the probe errors.
func (r *Runtime) CoreCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

type mutex struct {
	mu sync.Mutex
}

func (m *mutex) Lock()   { m.mu.Lock() }
func (m *mutex) Unlock() { m.mu.Unlock() }

type cond struct {
	cond     *sync.Cond
	platform *Runtime
}

func (c *cond) Wait()      { c.cond.Wait() }
func (c *cond) Signal()    { c.cond.Signal() }
func (c *cond) Broadcast() { c.cond.Broadcast() }

// WaitUntil waits on the condition variable until signaled or deadline.
// The caller must hold the bound mutex. Because sync.Cond offers no timed
// wait, a helper goroutine broadcasts (under the bound mutex) once the
// deadline elapses, waking every waiter to recheck; each waiter reports its
// own timedOut based on the clock.
func (c *cond) WaitUntil(deadline tag.Instant) bool {
	interval := deadline - c.platform.Now()
	if interval <= 0 {
		return true
	}
	timer := time.AfterFunc(time.Duration(interval), func() {
		c.cond.L.Lock()
		c.cond.Broadcast()
		c.cond.L.Unlock()
	})
	defer timer.Stop()

	c.cond.Wait()
	return c.platform.Now() >= deadline
}
