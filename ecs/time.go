package ecs

// DefaultDelta is one tick at 60 TPS.
const DefaultDelta = 1.0 / 60.0

// Time is the fixed-step clock of a World. Frame is 0 before the first tick
// and increases by one at the start of every scheduler update.
type Time struct {
	Frame uint64
	Delta float64
}
