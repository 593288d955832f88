// services/hal/internal/platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"tinygo.org/x/drivers"

	"joydisplay-go/errcode"
	"joydisplay-go/services/hal/internal/halcore"
	"joydisplay-go/services/render"
)

// DefaultResources returns host fakes. The firmware binary built for a PC
// runs against them, which is enough to watch the control loop's logs.
func DefaultResources() Resources {
	return Resources{
		Pins:    &HostPinFactory{},
		ADC:     &HostADCFactory{},
		PWM:     &HostPWMFactory{},
		I2C:     &HostI2CFactory{},
		Display: &HostDisplayFactory{},
		Console: &HostConsole{W: os.Stdout},
	}
}

// ----------------------------- I²C (host) ------------------------------------

// HostI2C implements tinygo drivers.I2C for host-side tests.
type HostI2C struct {
	mu     sync.Mutex
	ID     string
	FreqHz uint32
	LastTx struct {
		Addr uint16
		W    []byte
		Rn   int
	}
	// Err, when set, is returned by every Tx.
	Err error
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	return h.Err
}

type HostI2CFactory struct {
	mu    sync.Mutex
	buses map[string]*HostI2C
}

func (f *HostI2CFactory) Open(id string, sda, scl int, freqHz uint32) (drivers.I2C, error) {
	if id != "i2c0" && id != "i2c1" {
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "i2c", Msg: id}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.buses == nil {
		f.buses = make(map[string]*HostI2C)
	}
	b, ok := f.buses[id]
	if !ok {
		b = &HostI2C{ID: id}
		f.buses[id] = b
	}
	b.FreqHz = freqHz
	return b, nil
}

// Get exposes an opened bus for tests.
func (f *HostI2CFactory) Get(id string) (*HostI2C, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buses[id]
	return b, ok
}

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin and IRQPin for host-side tests. Set fires the
// installed handler synchronously when the level change matches its edge,
// which is how tests simulate a button press.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    halcore.Pull
	irqEdge halcore.Edge
	irqFunc func()
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	switch pull {
	case halcore.PullUp:
		p.level = true
	case halcore.PullDown:
		p.level = false
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	edge := edgeFrom(p.level, level)
	p.level = level
	irq := p.irqFunc
	want := irqWanted(p.irqEdge, edge)
	p.mu.Unlock()
	if want && irq != nil {
		irq()
	}
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports whether the pin was last configured as an output.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

func (p *FakePin) Pull() halcore.Pull {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pull
}

// Press drives a pulled-up button low and releases it again.
func (p *FakePin) Press() {
	p.Set(false)
	p.Set(true)
}

func (p *FakePin) SetIRQ(edge halcore.Edge, handler func()) error {
	p.mu.Lock()
	p.irqEdge = edge
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = halcore.EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

func edgeFrom(old, new bool) halcore.Edge {
	switch {
	case !old && new:
		return halcore.EdgeRising
	case old && !new:
		return halcore.EdgeFalling
	default:
		return halcore.EdgeNone
	}
}

func irqWanted(cfg, seen halcore.Edge) bool {
	switch cfg {
	case halcore.EdgeBoth:
		return seen == halcore.EdgeRising || seen == halcore.EdgeFalling
	default:
		return seen != halcore.EdgeNone && cfg == seen
	}
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	if n < 0 || n > 28 {
		return nil, false
	}
	return f.pin(n), true
}

func (f *HostPinFactory) pin(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p
}

// Get exposes the underlying *FakePin for tests (e.g. to drive IRQ edges).
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	return p, ok
}

// ----------------------------- ADC (host) ------------------------------------

// FakeADC holds a 16-bit reading set by the test.
type FakeADC struct {
	v atomic.Uint32
}

func (a *FakeADC) Get() uint16 { return uint16(a.v.Load()) }

// Set12 stores a 12-bit converter value left-aligned, as the hardware reports it.
func (a *FakeADC) Set12(v uint16) { a.v.Store(uint32(v) << 4 & 0xFFFF) }

type HostADCFactory struct {
	mu  sync.Mutex
	chs map[int]*FakeADC
}

func (f *HostADCFactory) ByPin(n int) (halcore.ADCChannel, error) {
	if !IsADCPin(n) {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "adc", Msg: fmt.Sprintf("GP%d has no ADC input", n)}
	}
	return f.Get(n), nil
}

// Get returns the stable fake for GP n, creating it on first use.
func (f *HostADCFactory) Get(n int) *FakeADC {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.chs == nil {
		f.chs = make(map[int]*FakeADC)
	}
	a, ok := f.chs[n]
	if !ok {
		a = &FakeADC{}
		f.chs[n] = a
	}
	return a
}

// ----------------------------- PWM (host) ------------------------------------

// FakePWM records the last level written.
type FakePWM struct {
	pin    int
	freqHz uint32
	level  atomic.Uint32
	writes atomic.Uint32
}

func (p *FakePWM) Set(level uint8) {
	p.level.Store(uint32(level))
	p.writes.Add(1)
}
func (p *FakePWM) Pin() int       { return p.pin }
func (p *FakePWM) Level() uint8   { return uint8(p.level.Load()) }
func (p *FakePWM) Writes() uint32 { return p.writes.Load() }
func (p *FakePWM) FreqHz() uint32 { return p.freqHz }

// HostPWMFactory enforces the RP2 rule that both channels of a slice share
// one frequency.
type HostPWMFactory struct {
	mu        sync.Mutex
	chs       map[int]*FakePWM
	sliceFreq map[uint8]uint32
}

func (f *HostPWMFactory) Channel(pin int, freqHz uint32) (halcore.PWMChannel, error) {
	if pin < 0 || pin > 28 {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "pwm", Msg: fmt.Sprintf("GP%d", pin)}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.chs == nil {
		f.chs = make(map[int]*FakePWM)
		f.sliceFreq = make(map[uint8]uint32)
	}
	slice, _ := PWMSlice(pin)
	if cur, ok := f.sliceFreq[slice]; ok && cur != freqHz {
		return nil, &errcode.E{C: errcode.PWMFailed, Op: "pwm", Msg: fmt.Sprintf("slice %d already at %d Hz", slice, cur)}
	}
	f.sliceFreq[slice] = freqHz
	p := &FakePWM{pin: pin, freqHz: freqHz}
	f.chs[pin] = p
	return p, nil
}

func (f *HostPWMFactory) Get(pin int) (*FakePWM, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.chs[pin]
	return p, ok
}

// ----------------------------- Display (host) --------------------------------

// HostDisplayFactory hands out in-memory frame buffers in place of the panel.
type HostDisplayFactory struct {
	Last *render.Framebuffer
	Addr uint16
}

func (f *HostDisplayFactory) Open(bus drivers.I2C, addr uint16, w, h int16) (halcore.Canvas, error) {
	if bus == nil {
		return nil, &errcode.E{C: errcode.DisplayDown, Op: "display", Msg: "no bus"}
	}
	f.Last = render.NewFramebuffer(w, h)
	f.Addr = addr
	return f.Last, nil
}

// ----------------------------- Console (host) --------------------------------

type HostConsole struct {
	W io.Writer
}

func (c *HostConsole) Open(uint32) (io.Writer, error) {
	if c.W == nil {
		return io.Discard, nil
	}
	return c.W, nil
}
