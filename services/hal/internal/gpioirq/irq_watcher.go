// services/hal/internal/gpioirq/irq_watcher.go
package gpioirq

import (
	"errors"
	"sync"
	"sync/atomic"

	"joydisplay-go/services/hal/internal/halcore"
	"joydisplay-go/types"
	"joydisplay-go/x/timex"
)

// Handler runs in interrupt context with the source button and the clock
// reading taken when the edge fired. It must not block, allocate or log.
// The return value reports whether the edge was acted on.
type Handler func(id types.ButtonID, nowMs uint32) bool

var ErrAlreadyWatched = errors.New("button already watched")

// Watcher binds button pins to a single edge handler. Unlike a queued worker
// there is no goroutine between the ISR and the handler: debounce and state
// changes are atomic, so the handler is called directly from the interrupt.
type Watcher struct {
	clock timex.Clock
	h     Handler

	mu      sync.Mutex
	watches map[types.ButtonID]*watch

	edges    atomic.Uint32 // every interrupt seen
	accepted atomic.Uint32 // edges the handler acted on
}

type watch struct {
	pin       halcore.IRQPin
	edge      halcore.Edge
	cancelIRQ func()
}

func New(clock timex.Clock, h Handler) *Watcher {
	return &Watcher{
		clock:   clock,
		h:       h,
		watches: map[types.ButtonID]*watch{},
	}
}

// Watch configures pin as a pulled-up input and routes its edge interrupts
// to the handler as id. The returned func detaches the interrupt.
func (w *Watcher) Watch(id types.ButtonID, pin halcore.IRQPin, edge halcore.Edge) (func(), error) {
	if edge == halcore.EdgeNone {
		return func() {}, nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.watches[id]; ok {
		return nil, ErrAlreadyWatched
	}

	if err := pin.ConfigureInput(halcore.PullUp); err != nil {
		return nil, err
	}
	handler := func() {
		w.edges.Add(1)
		if w.h(id, w.clock()) {
			w.accepted.Add(1)
		}
	}
	if err := pin.SetIRQ(edge, handler); err != nil {
		return nil, err
	}
	w.watches[id] = &watch{
		pin:       pin,
		edge:      edge,
		cancelIRQ: func() { _ = pin.ClearIRQ() },
	}

	return func() {
		w.mu.Lock()
		if cur, ok := w.watches[id]; ok {
			cur.cancelIRQ()
			delete(w.watches, id)
		}
		w.mu.Unlock()
	}, nil
}

// Close detaches every interrupt.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, wh := range w.watches {
		wh.cancelIRQ()
		delete(w.watches, id)
	}
}

// Edges reports interrupts seen and how many the handler accepted.
func (w *Watcher) Edges() (seen, accepted uint32) {
	return w.edges.Load(), w.accepted.Load()
}
