package types

// ---- Joystick samples ----

// AxisSample is one raw 12-bit ADC reading of a joystick axis.
type AxisSample uint16

const (
	AxisMin AxisSample = 0
	AxisMax AxisSample = 4095
	AxisMid AxisSample = 2048 // analog rest point
)

// ---- Outputs (retained on the bus) ----

// ScreenPosition is the top-left corner of the marker square, in pixels.
type ScreenPosition struct {
	X uint16 `json:"x"`
	Y uint16 `json:"y"`
}

// IntensityPair holds the 8-bit duty levels for the two PWM LEDs.
type IntensityPair struct {
	R uint8 `json:"r"` // driven by the X axis
	B uint8 `json:"b"` // driven by the Y axis
}

// ControlFlags is a point-in-time copy of the button-controlled flags.
type ControlFlags struct {
	PWMEnabled   bool `json:"pwm_enabled"`
	DigitalLEDOn bool `json:"digital_led_on"`
}
