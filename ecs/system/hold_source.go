package system

import (
	"sync"

	"github.com/milk9111/rewind/ecs/component"
)

// HoldSource turns discrete key events into held actions for devices that
// only report presses, such as terminals. An action counts as held for
// Window polls after its last press; the OS key repeat keeps it alive while
// the key stays down. Press is safe to call from another goroutine.
type HoldSource struct {
	Window uint64

	mu    sync.Mutex
	tick  uint64
	last  map[component.Action]uint64
	edges EdgeTracker
}

func NewHoldSource(window uint64) *HoldSource {
	if window == 0 {
		window = 1
	}
	return &HoldSource{Window: window, last: make(map[component.Action]uint64)}
}

func (h *HoldSource) Press(a component.Action) {
	h.mu.Lock()
	defer h.mu.Unlock()
	// Stamped with the upcoming poll so a press is seen at least once.
	h.last[a] = h.tick + 1
}

// Release drops every held action, e.g. when the window loses focus.
func (h *HoldSource) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.last)
}

func (h *HoldSource) Poll(uint64) (component.ActionSet, component.ActionSet) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.tick++
	var held component.ActionSet
	for a, at := range h.last {
		if h.tick-at < h.Window {
			held = held.With(a)
			continue
		}
		delete(h.last, a)
	}
	return h.edges.Next(held)
}
