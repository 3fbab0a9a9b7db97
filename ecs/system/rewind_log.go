package system

import (
	"log"

	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

// RewindLogSystem logs every rewind transition of the tick. It is silent
// unless enabled.
type RewindLogSystem struct {
	enabled bool
}

func NewRewindLogSystem(enabled bool) *RewindLogSystem {
	return &RewindLogSystem{enabled: enabled}
}

func (s *RewindLogSystem) Update(w *ecs.World) {
	if s == nil || !s.enabled || w == nil {
		return
	}
	frame := w.Time().Frame
	for _, evt := range w.Events().Pending() {
		re, ok := evt.Data.(ecs.RewindEvent)
		if !ok {
			continue
		}
		name := re.Entity.String()
		if n, ok := ecs.Get(w, re.Entity, component.NameComponent.Kind()); ok && n.Value != "" {
			name = n.Value
		}
		log.Printf("rewind: frame=%d entity=%s %s scope=%s samples=%d", frame, name, evt.Type, re.Scope, re.Samples)
	}
}
