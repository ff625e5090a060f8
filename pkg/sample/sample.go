// Package sample implements the counter-delta and staleness-tracking
// contract shared by every stat block: a sample pair rotates previous
// into current on each observation, and a keyed tracker marks-and-sweeps
// entities that can appear or disappear between ticks.
package sample

import "time"

// Pair holds the previous and current reading of a monotonic (or
// wrapping) counter, along with the instant each was taken, so a rate
// can be derived from actual elapsed wall-clock time rather than an
// assumed fixed tick length.
type Pair struct {
	Prev, Cur     uint64
	PrevAt, CurAt time.Time
}

// Observe rotates Cur into Prev and installs v as the new Cur. A
// freshly-zeroed Pair has Prev == Cur after its first Observe (detected
// via the zero CurAt), which callers use to suppress a rate on the
// tick an entry first appears.
func (p *Pair) Observe(v uint64, at time.Time) {
	if p.CurAt.IsZero() {
		p.Prev, p.PrevAt = v, at
	} else {
		p.Prev, p.PrevAt = p.Cur, p.CurAt
	}
	p.Cur, p.CurAt = v, at
}

// ElapsedMs is the wall-clock span between the previous and current
// sample.
func (p Pair) ElapsedMs() int64 {
	return p.CurAt.Sub(p.PrevAt).Milliseconds()
}

// WrapSub subtracts prev from cur using Go's native unsigned overflow,
// which is exactly the wrap-safe subtraction a counter that wraps at
// 2^64 needs: (cur - prev) mod 2^64 is correct whether or not cur
// wrapped past zero since prev was taken.
func WrapSub(cur, prev uint64) uint64 { return cur - prev }

// SaturatingSub subtracts prev from cur, clamping to zero when the
// counter has gone backwards, as kernel iowait accounting occasionally
// does.
func SaturatingSub(cur, prev uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return 0
}

// Rate converts a counter delta observed over elapsedMs into a
// per-second rate. Returns 0 when elapsedMs is non-positive, which
// covers a just-inserted entry where Prev == Cur.
func Rate(delta uint64, elapsedMs int64) float64 {
	if elapsedMs <= 0 {
		return 0
	}
	return 1000 * float64(delta) / float64(elapsedMs)
}
