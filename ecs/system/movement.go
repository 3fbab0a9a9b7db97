package system

import (
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

// MovementSystem turns held input into player velocity. Horizontal velocity
// is always MoveX * MoveSpeed, so releasing both keys stops the player dead.
// Nothing is written while the player is rewinding.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.VelocityComponent.Kind(),
	)
	for _, e := range entities {
		if h, ok := ecs.Get(w, e, component.HistoryComponent.Kind()); ok && h.Rewinding() {
			continue
		}
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())

		vel.X = input.MoveX * player.MoveSpeed

		if input.JumpPressed && grounded(w, e) {
			vel.Y = -player.JumpSpeed
		}
	}
}

func grounded(w *ecs.World, e ecs.Entity) bool {
	pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
	if !ok {
		return false
	}
	return pc.Grounded || pc.GroundGrace > 0
}
