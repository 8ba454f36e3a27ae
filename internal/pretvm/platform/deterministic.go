package platform

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lf-lang/pretvm-go/internal/pretvm/tag"
)

// Deterministic is a Platform adapter driven by a virtual clock the test
// advances explicitly via Advance, rather than wall time. It exists so
// DU/rendezvous scenarios can be asserted
// without any wall-clock flakiness, the way the original sources' spin-wait
// thresholds are themselves time-sensitive and hard to test against real
// time.
type Deterministic struct {
	now atomic.Int64

	mu      sync.Mutex
	waiters []chan struct{}
}

// NewDeterministic constructs a Deterministic platform starting at t=0.
func NewDeterministic() *Deterministic {
	return &Deterministic{}
}

// Now returns the current virtual instant.
func (d *Deterministic) Now() tag.Instant {
	return tag.Instant(d.now.Load())
}

// Advance moves the virtual clock forward by delta and wakes any goroutine
// parked in SleepUntil whose deadline has now elapsed.
func (d *Deterministic) Advance(delta tag.Interval) {
	d.now.Add(int64(delta))
	d.mu.Lock()
	woken := d.waiters
	d.waiters = nil
	d.mu.Unlock()
	for _, w := range woken {
		close(w)
	}
}

// Sleep is a no-op busy-advance placeholder: tests drive time explicitly
// via Advance, so a goroutine calling Sleep on this adapter simply yields
// without blocking virtual time.
func (d *Deterministic) Sleep(tag.Interval) {}

// SleepUntil blocks until the virtual clock reaches deadline (driven by a
// test calling Advance) or ctx is canceled.
func (d *Deterministic) SleepUntil(ctx context.Context, deadline tag.Instant) error {
	if d.Now() >= deadline {
		return nil
	}
	for {
		ch := make(chan struct{})
		d.mu.Lock()
		d.waiters = append(d.waiters, ch)
		d.mu.Unlock()

		// Checked after registering: an Advance that lands before the
		// registration is seen here, and one that lands after it closes ch.
		if d.Now() >= deadline {
			return nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (d *Deterministic) NewMutex() Mutex { return &mutex{} }

func (d *Deterministic) NewCond(m Mutex) Cond {
	rm, ok := m.(*mutex)
	if !ok {
		rm = &mutex{}
	}
	return &deterministicCond{cond: sync.NewCond(&rm.mu), platform: d}
}

// CoreCount reports a fixed value so worker-pool sizing is reproducible in
// tests regardless of the machine running them.
func (d *Deterministic) CoreCount() int { return 4 }

type deterministicCond struct {
	cond     *sync.Cond
	platform *Deterministic
}

func (c *deterministicCond) Wait()      { c.cond.Wait() }
func (c *deterministicCond) Signal()    { c.cond.Signal() }
func (c *deterministicCond) Broadcast() { c.cond.Broadcast() }

// WaitUntil returns at once if the virtual deadline has passed; otherwise it
// waits for Signal/Broadcast (Advance does not wake it) and reports whether
// the virtual clock has reached deadline by then.
func (c *deterministicCond) WaitUntil(deadline tag.Instant) bool {
	if c.platform.Now() >= deadline {
		return true
	}
	c.cond.Wait()
	return c.platform.Now() >= deadline
}
