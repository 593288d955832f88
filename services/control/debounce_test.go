package control

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebounceWindow(t *testing.T) {
	cases := []struct {
		name       string
		last, now  uint32
		seen       bool
		wantAccept bool
		wantNext   uint32
	}{
		{"first edge ever", 0, 5, false, true, 5},
		{"150ms apart rejected", 1000, 1150, true, false, 1000},
		{"250ms apart accepted", 1000, 1250, true, true, 1250},
		{"exactly the window accepted", 1000, 1200, true, true, 1200},
		{"199ms rejected", 1000, 1199, true, false, 1000},
		{"clock wrap", 0xFFFFFF00, 100, true, true, 100},
		{"clock wrap inside window", 0xFFFFFFF0, 50, true, false, 0xFFFFFFF0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, next := Debounce(tc.last, tc.now, tc.seen, DebounceWindow)
			if ok != tc.wantAccept || next != tc.wantNext {
				t.Fatalf("Debounce(%d,%d,%v) = (%v,%d), want (%v,%d)",
					tc.last, tc.now, tc.seen, ok, next, tc.wantAccept, tc.wantNext)
			}
		})
	}
}

func TestGateRecordsOnlyAccepted(t *testing.T) {
	g := NewGate(DebounceWindow)
	if _, seen := g.Last(); seen {
		t.Fatal("fresh gate reports a previous edge")
	}
	if !g.Allow(1000) {
		t.Fatal("first edge rejected")
	}
	if g.Allow(1150) {
		t.Fatal("edge 150ms later accepted")
	}
	if last, _ := g.Last(); last != 1000 {
		t.Fatalf("rejected edge moved timestamp to %d", last)
	}
	if !g.Allow(1400) {
		t.Fatal("edge 400ms after accepted one rejected")
	}
	if a, r := g.Counts(); a != 2 || r != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", a, r)
	}
}

func TestGateAcceptsBootTimeZero(t *testing.T) {
	g := NewGate(0) // default window
	if !g.Allow(0) {
		t.Fatal("edge at t=0 rejected on a fresh gate")
	}
	if g.Allow(199) {
		t.Fatal("edge inside default window accepted")
	}
}

func TestGateConcurrentEdgesAcceptOnce(t *testing.T) {
	g := NewGate(50 * time.Millisecond)
	var accepted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Allow(500) {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()
	if n := accepted.Load(); n != 1 {
		t.Fatalf("accepted %d simultaneous edges, want 1", n)
	}
}
