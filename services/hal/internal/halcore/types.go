// services/hal/internal/halcore/types.go
package halcore

import (
	"io"

	"tinygo.org/x/drivers"
)

// ---- Buses ----

// I2CBusFactory configures an I²C controller by id ("i2c0", "i2c1") on the
// given pins and returns it as a drivers.I2C.
type I2CBusFactory interface {
	Open(id string, sda, scl int, freqHz uint32) (drivers.I2C, error)
}

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// IRQPin extends GPIOPin with interrupts.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies GPIO pins by GP number.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

func EdgeToString(e Edge) string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

// ---- Analogue ----

// ADCChannel returns a 16-bit left-aligned conversion, the machine package
// convention. Consumers shift down to the converter's native width.
type ADCChannel interface {
	Get() uint16
}

type ADCFactory interface {
	ByPin(n int) (ADCChannel, error)
}

// ---- PWM ----

// PWMChannel is one channel of a PWM slice. Set takes a level in 0..255 and
// scales it to the slice's counter top.
type PWMChannel interface {
	Set(level uint8)
	Pin() int
}

type PWMFactory interface {
	Channel(pin int, freqHz uint32) (PWMChannel, error)
}

// ---- Display ----

// Canvas is a monochrome frame buffer that flushes to a panel.
type Canvas interface {
	drivers.Displayer
	ClearBuffer()
}

type DisplayFactory interface {
	Open(bus drivers.I2C, addr uint16, width, height int16) (Canvas, error)
}

// ---- Console ----

// ConsoleFactory opens the log sink at the given baud rate. Host builds
// ignore the rate.
type ConsoleFactory interface {
	Open(baud uint32) (io.Writer, error)
}
