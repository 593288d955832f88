package control

import "joydisplay-go/types"

// Sampler reads both joystick axes. Implementations return values in
// [0, 4095]; anything larger is clamped by the mappers.
type Sampler interface {
	Sample() (x, y types.AxisSample)
}

// RenderSink draws the marker. It owns its own failure handling.
type RenderSink interface {
	RenderSquare(pos types.ScreenPosition)
}

// ActuatorSink drives the LEDs. SetDigital is called from interrupt context
// and must not block.
type ActuatorSink interface {
	SetPWM(ch types.LEDChannel, level uint8)
	SetDigital(on bool)
}
