package system

import (
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

// NewPipeline returns the simulation tick in its required order: input and
// movement, physics, global rewind, local and object rewind, then history
// recording. Front ends add their presentation systems after it.
func NewPipeline(source InputSource, physics ecs.System, debug bool) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewInputSystem(source),
		NewMovementSystem(),
		physics,
		NewRewindSystem(component.ScopeGlobal),
		NewRewindSystem(component.ScopeLocal),
		NewRewindSystem(component.ScopeObject),
		NewHistorySystem(),
		NewRewindLogSystem(debug),
	)
}
