package control

import (
	"sync/atomic"

	"joydisplay-go/types"
)

// SharedState is the state touched by both the polling loop and the button
// interrupts. Every field is a single atomic word, so a reader sees either the
// value before a toggle or the value after it, never a mix.
//
// Only the interrupt path toggles flags or advances gates. The loop reads.
type SharedState struct {
	pwmEnabled   atomic.Bool
	digitalLEDOn atomic.Bool

	gates [types.NumButtons]*Gate
}

// NewSharedState returns the power-on state: PWM LEDs enabled, digital LED off.
func NewSharedState() *SharedState {
	s := &SharedState{}
	s.pwmEnabled.Store(true)
	for i := range s.gates {
		s.gates[i] = NewGate(DebounceWindow)
	}
	return s
}

func (s *SharedState) PWMEnabled() bool   { return s.pwmEnabled.Load() }
func (s *SharedState) DigitalLEDOn() bool { return s.digitalLEDOn.Load() }

// Flags returns a copy of both flags. The two loads are independent; callers
// that need a consistent pair across a concurrent toggle must not rely on it.
func (s *SharedState) Flags() types.ControlFlags {
	return types.ControlFlags{
		PWMEnabled:   s.pwmEnabled.Load(),
		DigitalLEDOn: s.digitalLEDOn.Load(),
	}
}

// TogglePWM flips pwmEnabled and returns the new value.
func (s *SharedState) TogglePWM() bool { return toggle(&s.pwmEnabled) }

// ToggleDigitalLED flips digitalLEDOn and returns the new value.
func (s *SharedState) ToggleDigitalLED() bool { return toggle(&s.digitalLEDOn) }

// Gate returns the debounce gate for b, or nil for an unknown button.
func (s *SharedState) Gate(b types.ButtonID) *Gate {
	if int(b) >= len(s.gates) {
		return nil
	}
	return s.gates[b]
}

// Stats snapshots per-button debounce counters.
func (s *SharedState) Stats() []types.ButtonStats {
	out := make([]types.ButtonStats, 0, len(s.gates))
	for i, g := range s.gates {
		a, r := g.Counts()
		out = append(out, types.ButtonStats{Button: types.ButtonID(i).String(), Accepted: a, Rejected: r})
	}
	return out
}

func toggle(b *atomic.Bool) bool {
	for {
		old := b.Load()
		if b.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
