package system

import (
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

// HistorySystem records the live pose of every idle entity at its sampling
// cadence. It must run after all rewind systems so a pose that was just
// played back is not recorded again.
type HistorySystem struct{}

func NewHistorySystem() *HistorySystem {
	return &HistorySystem{}
}

func (s *HistorySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	clock := w.Time()
	ecs.ForEach3(w,
		component.HistoryComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		func(_ ecs.Entity, h *component.History, t *component.Transform, v *component.Velocity) {
			h.Record(clock.Frame, clock.Delta, component.Snapshot{Transform: *t, Velocity: *v})
		},
	)
}
