package timex

import "time"

// Clock returns monotonic milliseconds. Values wrap at 2^32 (~49 days);
// consumers compare with unsigned subtraction.
type Clock func() uint32

// SinceBoot returns a Clock counting milliseconds from the moment it is created.
// It reads the monotonic component of time.Time, so wall-clock steps do not
// affect it. Safe to call from interrupt context on TinyGo targets.
func SinceBoot() Clock {
	boot := time.Now()
	return func() uint32 { return uint32(time.Since(boot).Milliseconds()) }
}

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}

// ResetTimer stops t, drains a pending fire and re-arms it for d.
func ResetTimer(t *time.Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
