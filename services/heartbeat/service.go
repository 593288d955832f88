// Package heartbeat logs a periodic status line built from the control
// loop's retained telemetry and the button counters.
package heartbeat

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"joydisplay-go/bus"
	"joydisplay-go/services/control"
	"joydisplay-go/types"
	"joydisplay-go/x/timex"
)

// TopicConfig accepts a new interval as a time.Duration or whole seconds.
var TopicConfig = bus.T("config", "heartbeat")

type Service struct {
	interval time.Duration
	stats    func() []types.ButtonStats
	log      *slog.Logger
	started  time.Time

	seen  bool // any telemetry received
	pos   types.ScreenPosition
	lvl   types.IntensityPair
	flags types.ControlFlags
	beats uint32
}

// New returns a heartbeat. stats may be nil.
func New(interval time.Duration, stats func() []types.ButtonStats, log *slog.Logger) *Service {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{interval: interval, stats: stats, log: log, started: time.Now()}
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	telem := conn.Subscribe(control.TopicAll())
	defer conn.Unsubscribe(telem)
	cfgSub := conn.Subscribe(TopicConfig)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTimer(s.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("heartbeat stopping")
			return
		case <-tick.C:
			s.beat()
			timex.ResetTimer(tick, s.interval)
		case msg := <-telem.Channel():
			s.apply(msg)
		case msg := <-cfgSub.Channel():
			if iv, ok := intervalOf(msg.Payload); ok {
				s.interval = iv
				timex.ResetTimer(tick, iv)
				s.log.Info("heartbeat interval set", "interval", iv)
			}
		}
	}
}

// Start runs the heartbeat until ctx is cancelled.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}

func (s *Service) apply(msg *bus.Message) {
	switch v := msg.Payload.(type) {
	case types.ScreenPosition:
		s.pos = v
	case types.IntensityPair:
		s.lvl = v
	case types.ControlFlags:
		s.flags = v
	default:
		return
	}
	s.seen = true
}

func (s *Service) beat() {
	s.beats++
	attrs := []any{
		"beat", s.beats,
		"uptime", time.Since(s.started).Truncate(time.Second),
	}
	if s.seen {
		attrs = append(attrs,
			"x", s.pos.X, "y", s.pos.Y,
			"red", s.lvl.R, "blue", s.lvl.B,
			"pwm", s.flags.PWMEnabled, "green", s.flags.DigitalLEDOn,
		)
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	attrs = append(attrs, "heap_inuse", uint32(ms.HeapInuse), "mallocs", uint32(ms.Mallocs))
	if s.stats != nil {
		for _, b := range s.stats() {
			attrs = append(attrs, slog.Group(b.Button, "accepted", b.Accepted, "rejected", b.Rejected))
		}
	}
	s.log.Info("heartbeat", attrs...)
}

func intervalOf(p any) (time.Duration, bool) {
	var d time.Duration
	switch v := p.(type) {
	case time.Duration:
		d = v
	case int:
		d = time.Duration(v) * time.Second
	case float64:
		d = time.Duration(v * float64(time.Second))
	default:
		return 0, false
	}
	return d, d > 0
}
