// Package tag implements the logical/physical time model PRET-VM schedules
// are expressed over: saturating instant arithmetic and (time, microstep)
// tags.
package tag

import (
	"math"
	"time"
)

// Instant is a signed 64-bit nanosecond count on a monotonic timeline.
type Instant int64

// Interval is a signed 64-bit nanosecond delta.
type Interval int64

// NEVER and FOREVER are the saturation sentinels. All time arithmetic
// saturates to these rather than wrapping.
const (
	NEVER   Instant = math.MinInt64
	FOREVER Instant = math.MaxInt64
)

// Common interval constants, mirroring the SEC/MSEC/USEC macros in the
// original C sources.
const (
	Nanosecond  Interval = 1
	Microsecond          = 1000 * Nanosecond
	Millisecond          = 1000 * Microsecond
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
	Day                  = 24 * Hour
	Week                 = 7 * Day
)

// Add computes a saturating instant + interval.
//
// If either operand is a sentinel, the corresponding sentinel wins (NEVER
// dominates FOREVER, matching lf_time_add in the original sources). Overflow
// saturates to FOREVER, underflow saturates to NEVER.
func Add(a Instant, b Interval) Instant {
	if a == NEVER || Instant(b) == NEVER {
		return NEVER
	}
	if a == FOREVER || Instant(b) == FOREVER {
		return FOREVER
	}
	res := a + Instant(b)
	if res < a && b > 0 {
		return FOREVER
	}
	if res > a && b < 0 {
		return NEVER
	}
	return res
}

// AsDuration converts a non-sentinel Interval to a time.Duration for
// interop with stdlib timer APIs. FOREVER and NEVER have no finite
// time.Duration equivalent; callers should special-case them before
// calling AsDuration (a run-wide timeout of zero disables the timeout
// rather than calling through here with FOREVER).
func AsDuration(i Interval) time.Duration {
	return time.Duration(i)
}
