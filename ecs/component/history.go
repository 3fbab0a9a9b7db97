package component

// Snapshot is one recorded kinematic state of an entity.
type Snapshot struct {
	Transform Transform
	Velocity  Velocity
}

// History is the rewind record of one entity: a stack of snapshots, the
// timer that paces both recording and playback, and the rewind state.
//
// Samples only grows while State is RewindIdle and only shrinks while it is
// not, so recording and playback never touch the same tick.
type History struct {
	Samples []Snapshot
	Timer   IntervalTimer
	State   RewindState

	advanced  bool
	lastFrame uint64
	due       bool
}

var HistoryComponent = NewComponent[History]()

func NewHistory(period float64) *History {
	return &History{Timer: NewIntervalTimer(period)}
}

// Advance ticks the sampling timer once per frame and reports whether this
// frame is a sampling instant. Later calls within the same frame return the
// cached answer, so playback and recording share one cadence.
func (h *History) Advance(frame uint64, dt float64) bool {
	if h.advanced && h.lastFrame == frame {
		return h.due
	}
	h.advanced = true
	h.lastFrame = frame
	h.due = h.Timer.Tick(dt)
	return h.due
}

// Record pushes snap when this frame is a sampling instant and the entity is
// idle. It reports whether a sample was stored.
func (h *History) Record(frame uint64, dt float64, snap Snapshot) bool {
	if !h.Advance(frame, dt) || h.State != RewindIdle {
		return false
	}
	h.Push(snap)
	return true
}

// Playback pops the newest snapshot when this frame is a sampling instant
// and the entity is rewinding. ok is false when nothing should be applied.
func (h *History) Playback(frame uint64, dt float64) (Snapshot, bool) {
	if !h.Advance(frame, dt) || h.State == RewindIdle {
		return Snapshot{}, false
	}
	return h.Pop()
}

func (h *History) Push(snap Snapshot) {
	h.Samples = append(h.Samples, snap)
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (Snapshot, bool) {
	n := len(h.Samples)
	if n == 0 {
		return Snapshot{}, false
	}
	snap := h.Samples[n-1]
	h.Samples = h.Samples[:n-1]
	return snap, true
}

func (h *History) Len() int {
	return len(h.Samples)
}

func (h *History) Rewinding() bool {
	return h.State != RewindIdle
}
