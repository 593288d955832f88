package timex

import (
	"testing"
	"time"
)

func TestSinceBootMonotonic(t *testing.T) {
	c := SinceBoot()
	a := c()
	time.Sleep(15 * time.Millisecond)
	b := c()
	if b-a < 10 {
		t.Fatalf("clock advanced %d ms, want >= 10", b-a)
	}
}

func TestPeriodFromHz(t *testing.T) {
	if got := PeriodFromHz(1000); got != 1_000_000 {
		t.Fatalf("1kHz -> %d ns", got)
	}
	if got := PeriodFromHz(0); got != 1_000_000_000 {
		t.Fatalf("0Hz -> %d ns", got)
	}
}
