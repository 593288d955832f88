package control

import (
	"sync"
	"sync/atomic"

	"joydisplay-go/types"
)

type fakeSampler struct{ x, y atomic.Uint32 }

func newFakeSampler(x, y types.AxisSample) *fakeSampler {
	s := &fakeSampler{}
	s.set(x, y)
	return s
}

func (s *fakeSampler) set(x, y types.AxisSample) {
	s.x.Store(uint32(x))
	s.y.Store(uint32(y))
}

func (s *fakeSampler) Sample() (types.AxisSample, types.AxisSample) {
	return types.AxisSample(s.x.Load()), types.AxisSample(s.y.Load())
}

type recordRender struct {
	mu  sync.Mutex
	pos []types.ScreenPosition
}

func (r *recordRender) RenderSquare(p types.ScreenPosition) {
	r.mu.Lock()
	r.pos = append(r.pos, p)
	r.mu.Unlock()
}

func (r *recordRender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pos)
}

type recordActuator struct {
	mu      sync.Mutex
	pwm     map[types.LEDChannel]uint8
	digital []bool
}

func newRecordActuator() *recordActuator {
	return &recordActuator{pwm: map[types.LEDChannel]uint8{}}
}

func (a *recordActuator) SetPWM(ch types.LEDChannel, level uint8) {
	a.mu.Lock()
	a.pwm[ch] = level
	a.mu.Unlock()
}

func (a *recordActuator) SetDigital(on bool) {
	a.mu.Lock()
	a.digital = append(a.digital, on)
	a.mu.Unlock()
}

func (a *recordActuator) levels() types.IntensityPair {
	a.mu.Lock()
	defer a.mu.Unlock()
	return types.IntensityPair{R: a.pwm[types.LEDRed], B: a.pwm[types.LEDBlue]}
}

func (a *recordActuator) digitalWrites() []bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]bool(nil), a.digital...)
}
