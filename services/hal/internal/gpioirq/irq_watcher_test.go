// services/hal/internal/gpioirq/irq_watcher_test.go

package gpioirq

import (
	"sync"
	"testing"

	"joydisplay-go/services/hal/internal/halcore"
	"joydisplay-go/types"
)

// fakeIRQPin implements halcore.IRQPin with minimal behaviour for tests.
type fakeIRQPin struct {
	mu      sync.Mutex
	level   bool
	pull    halcore.Pull
	edge    halcore.Edge
	handler func()
	number  int
}

func (p *fakeIRQPin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.pull = pull
	p.level = pull == halcore.PullUp
	p.mu.Unlock()
	return nil
}
func (p *fakeIRQPin) ConfigureOutput(initial bool) error { p.level = initial; return nil }
func (p *fakeIRQPin) Set(b bool)                         { p.mu.Lock(); p.level = b; p.mu.Unlock() }
func (p *fakeIRQPin) Get() bool                          { p.mu.Lock(); defer p.mu.Unlock(); return p.level }
func (p *fakeIRQPin) Number() int                        { return p.number }
func (p *fakeIRQPin) SetIRQ(e halcore.Edge, h func()) error {
	p.mu.Lock()
	p.edge, p.handler = e, h
	p.mu.Unlock()
	return nil
}
func (p *fakeIRQPin) ClearIRQ() error {
	p.mu.Lock()
	p.edge, p.handler = halcore.EdgeNone, nil
	p.mu.Unlock()
	return nil
}
func (p *fakeIRQPin) fire() {
	p.mu.Lock()
	h := p.handler
	p.mu.Unlock()
	if h != nil {
		h()
	}
}

type call struct {
	id  types.ButtonID
	now uint32
}

func TestWatcherForwardsEdgesWithClock(t *testing.T) {
	var now uint32 = 1000
	var calls []call
	w := New(func() uint32 { return now }, func(id types.ButtonID, ms uint32) bool {
		calls = append(calls, call{id, ms})
		return id == types.ButtonA
	})

	joy := &fakeIRQPin{number: 22}
	a := &fakeIRQPin{number: 5}
	if _, err := w.Watch(types.ButtonJoy, joy, halcore.EdgeFalling); err != nil {
		t.Fatalf("Watch joy: %v", err)
	}
	if _, err := w.Watch(types.ButtonA, a, halcore.EdgeFalling); err != nil {
		t.Fatalf("Watch a: %v", err)
	}
	if joy.pull != halcore.PullUp || !joy.Get() {
		t.Fatal("button pin should idle high with pull-up")
	}
	if a.edge != halcore.EdgeFalling {
		t.Fatalf("edge = %s", halcore.EdgeToString(a.edge))
	}

	joy.fire()
	now = 1250
	a.fire()

	want := []call{{types.ButtonJoy, 1000}, {types.ButtonA, 1250}}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d = %+v, want %+v", i, calls[i], want[i])
		}
	}
	if seen, acc := w.Edges(); seen != 2 || acc != 1 {
		t.Fatalf("Edges() = %d, %d; want 2, 1", seen, acc)
	}
}

func TestWatcherCancelAndDuplicate(t *testing.T) {
	n := 0
	w := New(func() uint32 { return 0 }, func(types.ButtonID, uint32) bool { n++; return true })
	pin := &fakeIRQPin{number: 22}

	cancel, err := w.Watch(types.ButtonJoy, pin, halcore.EdgeFalling)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if _, err := w.Watch(types.ButtonJoy, &fakeIRQPin{}, halcore.EdgeFalling); err != ErrAlreadyWatched {
		t.Fatalf("duplicate Watch err = %v", err)
	}

	cancel()
	pin.fire()
	if n != 0 {
		t.Fatal("handler ran after cancel")
	}
	if _, err := w.Watch(types.ButtonJoy, pin, halcore.EdgeFalling); err != nil {
		t.Fatalf("re-Watch after cancel: %v", err)
	}
	w.Close()
	pin.fire()
	if n != 0 {
		t.Fatal("handler ran after Close")
	}
}

func TestWatcherEdgeNoneIsNoop(t *testing.T) {
	w := New(func() uint32 { return 0 }, func(types.ButtonID, uint32) bool { return true })
	pin := &fakeIRQPin{}
	cancel, err := w.Watch(types.ButtonA, pin, halcore.EdgeNone)
	if err != nil || cancel == nil {
		t.Fatalf("Watch(EdgeNone) = %v", err)
	}
	cancel()
	if pin.handler != nil {
		t.Fatal("no IRQ should be installed")
	}
}
