package tag

import "math"

// Tag is a (logical-time, microstep) pair defining a position in the total
// order of reactor events. Microsteps order events simultaneous in time.
type Tag struct {
	Time      Instant
	Microstep uint32
}

// NeverTag and ForeverTag are the tag-level saturation sentinels.
var (
	NeverTag   = Tag{Time: NEVER, Microstep: 0}
	ForeverTag = Tag{Time: FOREVER, Microstep: math.MaxUint32}
)

// TagAdd computes a saturating tag addition.
//
// The time component saturates via Add. If b.Time > 0, a's microstep is
// first reset to 0 (a nonzero logical-time delay restarts the microstep
// counter), then microsteps are summed; a wrapped microstep sum saturates
// the whole tag to ForeverTag.
func TagAdd(a, b Tag) Tag {
	resTime := Add(a.Time, Interval(b.Time))
	if resTime == FOREVER {
		return ForeverTag
	}
	if resTime == NEVER {
		return NeverTag
	}

	aMicrostep := a.Microstep
	if b.Time > 0 {
		aMicrostep = 0
	}
	microstep := aMicrostep + b.Microstep
	if microstep < aMicrostep {
		return ForeverTag
	}
	return Tag{Time: resTime, Microstep: microstep}
}

// Compare is a total order on tags, lexicographic on (Time, Microstep).
// Returns -1, 0, or 1.
func Compare(t1, t2 Tag) int {
	switch {
	case t1.Time < t2.Time:
		return -1
	case t1.Time > t2.Time:
		return 1
	case t1.Microstep < t2.Microstep:
		return -1
	case t1.Microstep > t2.Microstep:
		return 1
	default:
		return 0
	}
}

// Delay computes the tag that results from delaying t by interval.
//
// If t.Time is NEVER or interval is negative, t is returned unchanged. A
// zero interval only increments the microstep (wrapping is the only
// reasonable behavior on microstep overflow, per the original source's own
// comment); a positive interval advances time and resets the microstep.
func Delay(t Tag, interval Interval) Tag {
	if t.Time == NEVER || interval < 0 {
		return t
	}
	if t.Time >= FOREVER-Instant(interval) {
		return ForeverTag
	}
	if interval == 0 {
		return Tag{Time: t.Time, Microstep: t.Microstep + 1}
	}
	return Tag{Time: t.Time + Instant(interval), Microstep: 0}
}

// DelayStrict computes the tag immediately preceding Delay(t, interval) in
// the total order, used for "strict" (nonzero, non-sentinel, finite-result)
// delays: it subtracts one nanosecond from the delayed time and sets the
// microstep to its maximum value.
func DelayStrict(t Tag, interval Interval) Tag {
	result := Delay(t, interval)
	if interval != 0 && Instant(interval) != NEVER && Instant(interval) != FOREVER &&
		result.Time != NEVER && result.Time != FOREVER {
		result.Time--
		result.Microstep = math.MaxUint32
	}
	return result
}
