package ecs

import "github.com/milk9111/rewind/ecs/component"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventRewindStarted = "rewind_started"
	EventRewindEnded   = "rewind_ended"
)

// RewindEvent is emitted when an entity enters or leaves a rewind state.
type RewindEvent struct {
	Entity Entity
	Scope  component.RewindScope
	// Samples is the history length at the moment of the transition.
	Samples int
}

// EventQueue is a FIFO queue that lives for one tick. Every system running
// later in the same tick can read it; the scheduler clears it afterwards.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Pending returns the events pushed so far this tick without clearing them.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
