// services/hal/hal.go
package hal

import (
	"errors"
	"fmt"
	"io"

	"joydisplay-go/errcode"
	"joydisplay-go/services/config"
	"joydisplay-go/services/hal/internal/gpioirq"
	"joydisplay-go/services/hal/internal/halcore"
	"joydisplay-go/services/hal/internal/platform"
	"joydisplay-go/services/render"
	"joydisplay-go/types"
	"joydisplay-go/x/timex"
)

// Panel geometry of the SSD1306 module.
const (
	PanelWidth  = 128
	PanelHeight = 64
)

// Board is the brought-up hardware for one profile.
type Board struct {
	Joystick *Joystick
	LEDs     *LEDs
	Display  render.Canvas
	Console  io.Writer

	// DisplayErr is set when the panel did not come up. Display is then an
	// offline canvas whose every flush fails with the same error.
	DisplayErr error

	buttons map[types.ButtonID]halcore.IRQPin
	irq     *gpioirq.Watcher
}

// Open brings up the board's peripherals using the build's default resources.
func Open(cfg config.Config) (*Board, error) {
	return openWith(cfg, platform.DefaultResources())
}

func openWith(cfg config.Config, res platform.Resources) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Board{buttons: map[types.ButtonID]halcore.IRQPin{}}

	con, err := res.Console.Open(cfg.Console.Baud)
	if err != nil {
		return nil, err
	}
	b.Console = con

	x, err := res.ADC.ByPin(cfg.Joystick.XPin)
	if err != nil {
		return nil, err
	}
	y, err := res.ADC.ByPin(cfg.Joystick.YPin)
	if err != nil {
		return nil, err
	}
	b.Joystick = &Joystick{x: x, y: y}

	red, err := res.PWM.Channel(cfg.LEDs.RedPin, cfg.PWM.FreqHz)
	if err != nil {
		return nil, err
	}
	blue, err := res.PWM.Channel(cfg.LEDs.BluePin, cfg.PWM.FreqHz)
	if err != nil {
		return nil, err
	}
	green, err := pin(res.Pins, cfg.LEDs.GreenPin)
	if err != nil {
		return nil, err
	}
	if err := green.ConfigureOutput(false); err != nil {
		return nil, errcode.Wrap(errcode.Error, "led green", err)
	}
	b.LEDs = &LEDs{red: red, blue: blue, green: green}

	for id, n := range map[types.ButtonID]int{
		types.ButtonJoy: cfg.Buttons.JoyPin,
		types.ButtonA:   cfg.Buttons.APin,
	} {
		p, err := pin(res.Pins, n)
		if err != nil {
			return nil, err
		}
		irq, ok := p.(halcore.IRQPin)
		if !ok {
			return nil, &errcode.E{C: errcode.IRQFailed, Op: "button " + id.String(), Msg: fmt.Sprintf("GP%d has no interrupt", n)}
		}
		b.buttons[id] = irq
	}

	b.Display, b.DisplayErr = openDisplay(cfg, res)
	return b, nil
}

func openDisplay(cfg config.Config, res platform.Resources) (render.Canvas, error) {
	d := cfg.Display
	bus, err := res.I2C.Open(d.Bus, d.SDAPin, d.SCLPin, d.FreqHz)
	if err == nil {
		var c halcore.Canvas
		if c, err = res.Display.Open(bus, d.Address, PanelWidth, PanelHeight); err == nil {
			return c, nil
		}
	}
	off := render.NewFramebuffer(PanelWidth, PanelHeight)
	off.FlushErr = err
	return off, err
}

func pin(f halcore.PinFactory, n int) (halcore.GPIOPin, error) {
	p, ok := f.ByNumber(n)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "gpio", Msg: fmt.Sprintf("GP%d", n)}
	}
	return p, nil
}

// WatchButtons routes falling edges of both buttons to h. h runs in
// interrupt context with the clock reading taken at the edge.
func (b *Board) WatchButtons(clock timex.Clock, h func(id types.ButtonID, nowMs uint32) bool) error {
	if b.irq != nil {
		return errors.New("buttons already watched")
	}
	w := gpioirq.New(clock, h)
	for id := types.ButtonID(0); id < types.NumButtons; id++ {
		if _, err := w.Watch(id, b.buttons[id], halcore.EdgeFalling); err != nil {
			w.Close()
			return errcode.Wrap(errcode.IRQFailed, "button "+id.String(), err)
		}
	}
	b.irq = w
	return nil
}

// ButtonEdges reports interrupts seen and accepted since WatchButtons.
func (b *Board) ButtonEdges() (seen, accepted uint32) {
	if b.irq == nil {
		return 0, 0
	}
	return b.irq.Edges()
}

// Close detaches the button interrupts.
func (b *Board) Close() {
	if b.irq != nil {
		b.irq.Close()
		b.irq = nil
	}
}
