package types

// ------------------------
// Buttons
// ------------------------

// ButtonID identifies a physical push-button line.
type ButtonID uint8

const (
	ButtonJoy ButtonID = iota // joystick press; toggles the digital LED
	ButtonA                   // toggles the PWM LEDs

	NumButtons = 2
)

func (b ButtonID) String() string {
	switch b {
	case ButtonJoy:
		return "joy"
	case ButtonA:
		return "a"
	default:
		return "unknown"
	}
}

// ButtonStats counts debounce outcomes for one button.
type ButtonStats struct {
	Button   string `json:"button"`
	Accepted uint32 `json:"accepted"`
	Rejected uint32 `json:"rejected"`
}

// ------------------------
// LEDs
// ------------------------

// LEDChannel selects one of the PWM-driven LEDs.
type LEDChannel uint8

const (
	LEDRed LEDChannel = iota
	LEDBlue
)

func (c LEDChannel) String() string {
	if c == LEDBlue {
		return "blue"
	}
	return "red"
}
