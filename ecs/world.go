package ecs

import "github.com/milk9111/rewind/ecs/component"

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// World owns entities, their components, the event queue and the tick clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
	time     Time
}

// NewWorld creates an empty ECS world stepping at the given fixed delta.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]store),
		time:   Time{Delta: DefaultDelta},
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot. It reports
// false when e was already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Query returns the live entities owning every listed component kind, in the
// dense order of the smallest store.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok || s.len() == 0 {
			return nil
		}
		stores = append(stores, s)
	}
	smallest := stores[0]
	for _, s := range stores[1:] {
		if s.len() < smallest.len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.len())
outer:
	for _, id := range smallest.ids() {
		for _, s := range stores {
			if !s.has(id) {
				continue outer
			}
		}
		if e, ok := w.entities.entity(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity owning kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return 0, false
	}
	for _, id := range s.ids() {
		if e, ok := w.entities.entity(id); ok {
			return e, true
		}
	}
	return 0, false
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Time returns the world tick clock.
func (w *World) Time() Time {
	if w == nil {
		return Time{}
	}
	return w.time
}

// SetDelta sets the fixed step, in seconds, every following tick reports.
func (w *World) SetDelta(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.time.Delta = dt
}

func (w *World) beginFrame() {
	w.time.Frame++
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}
