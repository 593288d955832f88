package control

import (
	"context"
	"log/slog"
	"time"

	"joydisplay-go/bus"
	"joydisplay-go/types"
	"joydisplay-go/x/timex"
)

// LoopPeriod is the pause between polling iterations.
const LoopPeriod = 100 * time.Millisecond

type LoopConfig struct {
	Period time.Duration   // 0 means LoopPeriod
	Conn   *bus.Connection // optional; receives retained joy/* telemetry
	Logger *slog.Logger    // optional
}

// Loop is the polling side: sample, map, render, actuate, sleep.
// It only reads SharedState.
type Loop struct {
	sampler Sampler
	render  RenderSink
	act     ActuatorSink
	st      *SharedState

	period time.Duration
	conn   *bus.Connection
	log    *slog.Logger

	// last reported outputs, touched only by the loop goroutine
	reported  bool
	lastPos   types.ScreenPosition
	lastLevel types.IntensityPair
	lastFlags types.ControlFlags
}

func NewLoop(s Sampler, r RenderSink, a ActuatorSink, st *SharedState, cfg LoopConfig) *Loop {
	if cfg.Period <= 0 {
		cfg.Period = LoopPeriod
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{
		sampler: s,
		render:  r,
		act:     a,
		st:      st,
		period:  cfg.Period,
		conn:    cfg.Conn,
		log:     cfg.Logger,
	}
}

// Step runs one iteration and returns what it drove.
func (l *Loop) Step() (types.ScreenPosition, types.IntensityPair) {
	x, y := l.sampler.Sample()

	pos := MapPosition(x, y)
	l.render.RenderSquare(pos)

	// pwmEnabled is loaded exactly once per iteration.
	lvl := MapIntensity(x, y, l.st.PWMEnabled())
	l.act.SetPWM(types.LEDRed, lvl.R)
	l.act.SetPWM(types.LEDBlue, lvl.B)

	l.report(pos, lvl)
	return pos, lvl
}

// Run drives Step every period until ctx is cancelled. The firmware passes a
// context that is never cancelled.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("control loop starting", "period", l.period)
	t := time.NewTimer(l.period)
	defer t.Stop()
	for {
		l.Step()
		timex.ResetTimer(t, l.period)
		select {
		case <-ctx.Done():
			l.log.Info("control loop stopping")
			return ctx.Err()
		case <-t.C:
		}
	}
}

// report logs flag transitions and publishes outputs that changed.
func (l *Loop) report(pos types.ScreenPosition, lvl types.IntensityPair) {
	flags := l.st.Flags()
	first := !l.reported
	l.reported = true

	if first || flags != l.lastFlags {
		if !first {
			if flags.PWMEnabled != l.lastFlags.PWMEnabled {
				l.log.Info("pwm leds toggled", "enabled", flags.PWMEnabled)
			}
			if flags.DigitalLEDOn != l.lastFlags.DigitalLEDOn {
				l.log.Info("digital led toggled", "on", flags.DigitalLEDOn)
			}
		}
		l.lastFlags = flags
		l.publish(TopicFlags(), flags)
	}
	if first || pos != l.lastPos {
		l.log.Debug("marker moved", "x", pos.X, "y", pos.Y)
		l.lastPos = pos
		l.publish(TopicPosition(), pos)
	}
	if first || lvl != l.lastLevel {
		l.lastLevel = lvl
		l.publish(TopicIntensity(), lvl)
	}
}

func (l *Loop) publish(t bus.Topic, v any) {
	if l.conn == nil {
		return
	}
	l.conn.Publish(l.conn.NewMessage(t, v, true))
}
