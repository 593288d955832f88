// services/hal/devices.go
package hal

import (
	"joydisplay-go/services/hal/internal/halcore"
	"joydisplay-go/types"
)

// Joystick samples both axes of the analogue stick.
type Joystick struct {
	x, y halcore.ADCChannel
}

// Sample reads X then Y. The converter is 12-bit; the machine package reports
// it left-aligned in 16 bits, so the low nibble is dropped.
func (j *Joystick) Sample() (x, y types.AxisSample) {
	return types.AxisSample(j.x.Get() >> 4), types.AxisSample(j.y.Get() >> 4)
}

// LEDs drives the RGB LED: red and blue by PWM, green as a plain output.
type LEDs struct {
	red, blue halcore.PWMChannel
	green     halcore.GPIOPin
}

func (l *LEDs) SetPWM(ch types.LEDChannel, level uint8) {
	switch ch {
	case types.LEDRed:
		l.red.Set(level)
	case types.LEDBlue:
		l.blue.Set(level)
	}
}

// SetDigital is a single register write and is safe from interrupt context.
func (l *LEDs) SetDigital(on bool) { l.green.Set(on) }
