package component

import "math"

const timerEpsilon = 1e-9

// IntervalTimer is a repeating timer. Elapsed carries the remainder past the
// last completed period so the cadence does not drift.
type IntervalTimer struct {
	Period  float64
	Elapsed float64
}

func NewIntervalTimer(period float64) IntervalTimer {
	return IntervalTimer{Period: period}
}

// Tick advances the timer by dt and reports whether at least one period
// completed. A non-positive period fires on every tick.
func (t *IntervalTimer) Tick(dt float64) bool {
	if t.Period <= 0 {
		return true
	}
	if dt > 0 {
		t.Elapsed += dt
	}
	if t.Elapsed+timerEpsilon < t.Period {
		return false
	}
	n := math.Floor((t.Elapsed + timerEpsilon) / t.Period)
	t.Elapsed -= n * t.Period
	if t.Elapsed < 0 {
		t.Elapsed = 0
	}
	return true
}

func (t *IntervalTimer) Reset() {
	t.Elapsed = 0
}
