package control

import "joydisplay-go/types"

// Buttons applies debounced button edges to the shared state.
type Buttons struct {
	st  *SharedState
	act ActuatorSink
}

func NewButtons(st *SharedState, act ActuatorSink) *Buttons {
	return &Buttons{st: st, act: act}
}

// HandleEdge is called from the falling-edge interrupt of button id with a
// monotonic timestamp. It reports whether the edge was accepted.
//
// The joystick button flips the digital LED and drives the pin right away.
// Button A only flips pwmEnabled; the loop applies it on its next pass.
func (b *Buttons) HandleEdge(id types.ButtonID, nowMs uint32) bool {
	g := b.st.Gate(id)
	if g == nil || !g.Allow(nowMs) {
		return false
	}
	switch id {
	case types.ButtonJoy:
		b.act.SetDigital(b.st.ToggleDigitalLED())
	case types.ButtonA:
		b.st.TogglePWM()
	}
	return true
}
