package control

import (
	"sync/atomic"
	"time"
)

// DebounceWindow is the minimum spacing between accepted presses of one button.
const DebounceWindow = 200 * time.Millisecond

// Debounce decides whether an edge at now (ms) passes a gate whose last
// accepted edge was at last. seen is false until the gate has accepted once.
// Rejected edges leave the timestamp untouched. Timestamps wrap at 2^32 ms.
func Debounce(last, now uint32, seen bool, window time.Duration) (accept bool, next uint32) {
	if seen && now-last < uint32(window.Milliseconds()) {
		return false, last
	}
	return true, now
}

// Gate is a per-button edge filter safe for interrupt context: it never
// blocks and keeps its whole record in one atomic word.
type Gate struct {
	window time.Duration

	// bit 32 set once an edge has been accepted; low 32 bits hold its time.
	rec atomic.Uint64

	accepted atomic.Uint32
	rejected atomic.Uint32
}

const seenBit = 1 << 32

func NewGate(window time.Duration) *Gate {
	if window <= 0 {
		window = DebounceWindow
	}
	return &Gate{window: window}
}

// Allow reports whether an edge at nowMs is accepted, recording it if so.
func (g *Gate) Allow(nowMs uint32) bool {
	for {
		old := g.rec.Load()
		ok, next := Debounce(uint32(old), nowMs, old&seenBit != 0, g.window)
		if !ok {
			g.rejected.Add(1)
			return false
		}
		if g.rec.CompareAndSwap(old, seenBit|uint64(next)) {
			g.accepted.Add(1)
			return true
		}
	}
}

// Last returns the last accepted timestamp and whether one exists.
func (g *Gate) Last() (uint32, bool) {
	r := g.rec.Load()
	return uint32(r), r&seenBit != 0
}

// Counts returns how many edges were accepted and rejected so far.
func (g *Gate) Counts() (accepted, rejected uint32) {
	return g.accepted.Load(), g.rejected.Load()
}
