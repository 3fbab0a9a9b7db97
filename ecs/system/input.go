package system

import (
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

// InputSource produces the logical actions for one tick. Keyboards, scripts
// and tests all sit behind it, so the simulation never touches a device.
type InputSource interface {
	// Poll returns the actions held this tick and the subset that went down
	// this tick.
	Poll(frame uint64) (held, pressed component.ActionSet)
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.source == nil {
		return
	}

	held, pressed := i.source.Poll(w.Time().Frame)

	moveX := 0.0
	if held.Has(component.ActionMoveLeft) {
		moveX -= 1
	}
	if held.Has(component.ActionMoveRight) {
		moveX += 1
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.Held = held
		input.Pressed = pressed
		input.MoveX = moveX
		input.Jump = held.Has(component.ActionJump)
		input.JumpPressed = pressed.Has(component.ActionJump)
	})
}

// heldActions returns the actions of the first input-bearing entity. Key
// state is global, so any input entity will do.
func heldActions(w *ecs.World) component.ActionSet {
	e, ok := w.First(component.InputComponent.Kind())
	if !ok {
		return 0
	}
	input, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return 0
	}
	return input.Held
}

// EdgeTracker derives "pressed this tick" from consecutive held sets.
type EdgeTracker struct {
	prev component.ActionSet
}

func (t *EdgeTracker) Next(held component.ActionSet) (component.ActionSet, component.ActionSet) {
	pressed := held &^ t.prev
	t.prev = held
	return held, pressed
}

// ManualSource reports whatever Held is set to. Tests and tools drive it
// directly between ticks.
type ManualSource struct {
	Held  component.ActionSet
	edges EdgeTracker
}

func (m *ManualSource) Poll(uint64) (component.ActionSet, component.ActionSet) {
	return m.edges.Next(m.Held)
}
