// services/hal/internal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"fmt"
	"io"
	"machine"
	"sync"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"

	"joydisplay-go/errcode"
	"joydisplay-go/services/hal/internal/halcore"
	"joydisplay-go/x/timex"
)

// DefaultResources returns the RP2 peripherals. Nothing is configured until
// a factory is asked for it.
func DefaultResources() Resources {
	return Resources{
		Pins:    rp2PinFactory{},
		ADC:     &rp2ADCFactory{},
		PWM:     &rp2PWMFactory{slices: map[uint8]uint32{}},
		I2C:     rp2I2CFactory{},
		Display: ssd1306Factory{},
		Console: uartConsole{},
	}
}

// ---- I²C ----

type rp2I2CFactory struct{}

func (rp2I2CFactory) Open(id string, sda, scl int, freqHz uint32) (drivers.I2C, error) {
	var hw *machine.I2C
	switch id {
	case "i2c0":
		hw = machine.I2C0
	case "i2c1":
		hw = machine.I2C1
	default:
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "i2c", Msg: id}
	}
	err := hw.Configure(machine.I2CConfig{
		Frequency: freqHz,
		SDA:       machine.Pin(sda),
		SCL:       machine.Pin(scl),
	})
	if err != nil {
		return nil, errcode.Wrap(errcode.BusFailed, "i2c "+id, err)
	}
	return hw, nil
}

// ---- GPIO (includes IRQ support) ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

func (r *rp2Pin) SetIRQ(edge halcore.Edge, handler func()) error {
	return r.p.SetInterrupt(toPinChange(edge), func(machine.Pin) { handler() })
}

func (r *rp2Pin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

func toPinChange(e halcore.Edge) machine.PinChange {
	switch e {
	case halcore.EdgeRising:
		return machine.PinRising
	case halcore.EdgeFalling:
		return machine.PinFalling
	case halcore.EdgeBoth:
		return machine.PinToggle
	default:
		var zero machine.PinChange
		return zero
	}
}

// ---- ADC ----

type rp2ADCFactory struct {
	once sync.Once
}

func (f *rp2ADCFactory) ByPin(n int) (halcore.ADCChannel, error) {
	if !IsADCPin(n) {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "adc", Msg: fmt.Sprintf("GP%d has no ADC input", n)}
	}
	f.once.Do(machine.InitADC)
	a := machine.ADC{Pin: machine.Pin(n)}
	if err := a.Configure(machine.ADCConfig{}); err != nil {
		return nil, errcode.Wrap(errcode.Unsupported, "adc", err)
	}
	return a, nil
}

// ---- PWM ----

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// Select controller handle for a given slice number (0..7).
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// rp2PWMFactory configures each slice once; the second channel of a slice
// must ask for the same frequency.
type rp2PWMFactory struct {
	mu     sync.Mutex
	slices map[uint8]uint32 // slice -> configured Hz
}

func (f *rp2PWMFactory) Channel(pin int, freqHz uint32) (halcore.PWMChannel, error) {
	if pin < 0 || pin > 28 {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "pwm", Msg: fmt.Sprintf("GP%d", pin)}
	}
	slice, err := machine.PWMPeripheral(machine.Pin(pin))
	if err != nil {
		return nil, errcode.Wrap(errcode.PWMFailed, "pwm", err)
	}
	ctrl := pwmGroupBySlice(slice)

	f.mu.Lock()
	defer f.mu.Unlock()
	if cur, ok := f.slices[slice]; !ok {
		period := timex.PeriodFromHz(freqHz)
		if err := ctrl.Configure(machine.PWMConfig{Period: period}); err != nil {
			return nil, errcode.Wrap(errcode.PWMFailed, "pwm", err)
		}
		f.slices[slice] = freqHz
	} else if cur != freqHz {
		return nil, &errcode.E{C: errcode.PWMFailed, Op: "pwm", Msg: fmt.Sprintf("slice %d already at %d Hz", slice, cur)}
	}

	ch, err := ctrl.Channel(machine.Pin(pin))
	if err != nil {
		return nil, errcode.Wrap(errcode.PWMFailed, "pwm", err)
	}
	p := &rp2PWM{pin: pin, ctrl: ctrl, ch: ch, top: ctrl.Top()}
	p.Set(0)
	return p, nil
}

// rp2PWM is one channel of a slice.
type rp2PWM struct {
	pin  int
	ctrl pwmCtrl
	ch   uint8  // 0 => A, 1 => B
	top  uint32 // controller.Top() after Configure
}

// Set scales 0..255 onto 0..top. Called from the control loop only.
func (p *rp2PWM) Set(level uint8) {
	p.ctrl.Set(p.ch, uint32(level)*p.top/255)
}

func (p *rp2PWM) Pin() int { return p.pin }

// ---- Display ----

type ssd1306Factory struct{}

func (ssd1306Factory) Open(bus drivers.I2C, addr uint16, w, h int16) (halcore.Canvas, error) {
	if bus == nil {
		return nil, &errcode.E{C: errcode.DisplayDown, Op: "display", Msg: "no bus"}
	}
	d := ssd1306.NewI2C(bus)
	d.Configure(ssd1306.Config{
		Width:    w,
		Height:   h,
		Address:  addr,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	d.ClearBuffer()
	if err := d.Display(); err != nil {
		return nil, errcode.Wrap(errcode.DisplayDown, "display", err)
	}
	return d, nil
}

// ---- Console ----

type uartConsole struct{}

// Open configures UART0 on its default pins. uartx applies its own defaults
// for zero fields.
func (uartConsole) Open(baud uint32) (io.Writer, error) {
	hw := uartx.UART0
	err := hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	if err != nil {
		return nil, errcode.Wrap(errcode.BusFailed, "uart0", err)
	}
	return hw, nil
}
