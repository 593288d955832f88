// services/hal/internal/platform/resources.go
package platform

import "joydisplay-go/services/hal/internal/halcore"

// Resources bundles the hardware factories bring-up draws from. Each build
// supplies its own DefaultResources; tests build one from host fakes.
type Resources struct {
	Pins    halcore.PinFactory
	ADC     halcore.ADCFactory
	PWM     halcore.PWMFactory
	I2C     halcore.I2CBusFactory
	Display halcore.DisplayFactory
	Console halcore.ConsoleFactory
}

// IsADCPin reports whether GP n is routed to the ADC on RP2 parts.
func IsADCPin(n int) bool { return n >= 26 && n <= 29 }

// PWMSlice returns the RP2 PWM slice and channel (0 => A, 1 => B) for GP n.
func PWMSlice(n int) (slice, ch uint8) {
	return uint8((n >> 1) & 7), uint8(n & 1)
}
