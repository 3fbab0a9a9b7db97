package system

import (
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

// RewindSystem decides, for every entity in its scope, whether the entity
// rewinds this tick, and plays one snapshot back when it does. The global,
// local and object scopes are three instances of this one system; the
// global instance has to run first so its pre-emption is visible to the
// others.
type RewindSystem struct {
	scope component.RewindScope
}

func NewRewindSystem(scope component.RewindScope) *RewindSystem {
	return &RewindSystem{scope: scope}
}

func (r *RewindSystem) Scope() component.RewindScope {
	return r.scope
}

func (r *RewindSystem) Update(w *ecs.World) {
	if r == nil || w == nil {
		return
	}

	held := heldActions(w)
	scopeHeld := held.Has(r.scope.Action())
	globalHeld := held.Has(component.ActionRewindGlobal)
	clock := w.Time()

	ecs.ForEach(w, component.HistoryComponent.Kind(), func(e ecs.Entity, h *component.History) {
		if !r.targets(w, e) {
			return
		}

		if next := r.arbitrate(h, scopeHeld, globalHeld); next != h.State {
			transition(w, e, h, next)
		}
		if h.State != r.scope.State() {
			return
		}

		snap, ok := h.Playback(clock.Frame, clock.Delta)
		if !ok {
			// Out of samples: the next evaluation drops the entity to idle.
			return
		}
		applySnapshot(w, e, snap)
	})
}

func (r *RewindSystem) targets(w *ecs.World, e ecs.Entity) bool {
	switch r.scope {
	case component.ScopeLocal:
		return ecs.Has(w, e, component.PlayerTagComponent.Kind())
	case component.ScopeObject:
		return !ecs.Has(w, e, component.PlayerTagComponent.Kind())
	default:
		return true
	}
}

// arbitrate returns the state h should be in after this scope has looked at
// it. States owned by other scopes are left alone, except that global takes
// precedence over local and object.
func (r *RewindSystem) arbitrate(h *component.History, scopeHeld, globalHeld bool) component.RewindState {
	own := r.scope.State()
	hasSamples := h.Len() > 0

	if r.scope == component.ScopeGlobal {
		switch {
		case scopeHeld && hasSamples && (h.State == component.RewindIdle || h.State == own):
			return own
		case h.State == own:
			return component.RewindIdle
		default:
			return h.State
		}
	}

	switch {
	case h.State == component.RewindingGlobal:
		return h.State
	case scopeHeld && !globalHeld && hasSamples:
		return own
	case h.State == own:
		return component.RewindIdle
	default:
		return h.State
	}
}

// transition moves h to next, suspends or restores gravity, and reports the
// change on the event queue.
func transition(w *ecs.World, e ecs.Entity, h *component.History, next component.RewindState) {
	prev := h.State
	h.State = next

	if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
		if next == component.RewindIdle {
			g.Scale = g.Rest
		} else {
			g.Scale = 0
		}
	}

	if scope, ok := prev.Scope(); ok {
		w.Events().Push(ecs.Event{Type: ecs.EventRewindEnded, Data: ecs.RewindEvent{Entity: e, Scope: scope, Samples: h.Len()}})
	}
	if scope, ok := next.Scope(); ok {
		w.Events().Push(ecs.Event{Type: ecs.EventRewindStarted, Data: ecs.RewindEvent{Entity: e, Scope: scope, Samples: h.Len()}})
	}
}

func applySnapshot(w *ecs.World, e ecs.Entity, snap component.Snapshot) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X = snap.Transform.X
		t.Y = snap.Transform.Y
		t.Rotation = snap.Transform.Rotation
	}
	if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		*v = snap.Velocity
	}
}
