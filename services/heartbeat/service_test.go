package heartbeat

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"joydisplay-go/bus"
	"joydisplay-go/services/control"
	"joydisplay-go/types"
)

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func newLogger(w *syncBuffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, nil))
}

func TestBeatIncludesTelemetryAndStats(t *testing.T) {
	var out syncBuffer
	stats := func() []types.ButtonStats {
		return []types.ButtonStats{{Button: "joy", Accepted: 3, Rejected: 1}}
	}
	s := New(time.Second, stats, newLogger(&out))

	s.apply(&bus.Message{Payload: types.ScreenPosition{X: 60, Y: 27}})
	s.apply(&bus.Message{Payload: types.IntensityPair{R: 255, B: 0}})
	s.apply(&bus.Message{Payload: types.ControlFlags{PWMEnabled: true}})
	s.apply(&bus.Message{Payload: "ignored"})
	s.beat()

	line := out.String()
	for _, want := range []string{"msg=heartbeat", "beat=1", "x=60", "y=27", "red=255", "blue=0", "pwm=true", "green=false", "joy.accepted=3", "joy.rejected=1"} {
		if !strings.Contains(line, want) {
			t.Errorf("missing %q in %q", want, line)
		}
	}
}

func TestBeatWithoutTelemetry(t *testing.T) {
	var out syncBuffer
	s := New(time.Second, nil, newLogger(&out))
	s.beat()
	if line := out.String(); strings.Contains(line, "x=") || !strings.Contains(line, "beat=1") {
		t.Fatalf("unexpected line %q", line)
	}
}

func TestServiceReadsRetainedTelemetry(t *testing.T) {
	b := bus.NewBus(8)
	pub := b.NewConnection("control")
	pub.Publish(pub.NewMessage(control.TopicPosition(), types.ScreenPosition{X: 1, Y: 2}, true))

	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := New(10*time.Millisecond, nil, newLogger(&out))
	if err := s.Start(ctx, b.NewConnection("heartbeat")); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), "x=1 y=2") {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("no heartbeat with retained position; log=%q", out.String())
}

func TestIntervalOf(t *testing.T) {
	cases := []struct {
		in   any
		want time.Duration
		ok   bool
	}{
		{2 * time.Second, 2 * time.Second, true},
		{3, 3 * time.Second, true},
		{0.5, 500 * time.Millisecond, true},
		{0, 0, false},
		{"5", 0, false},
	}
	for _, c := range cases {
		got, ok := intervalOf(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("intervalOf(%v) = %v, %v", c.in, got, ok)
		}
	}
}
