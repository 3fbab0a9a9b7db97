package system

import (
	"testing"

	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

const restGravityScale = 10.0

// rig is a small world wired with the real tick order. Physics is either the
// Chipmunk system or the kinematic stand-in below.
type rig struct {
	w     *ecs.World
	src   *ManualSource
	sched *ecs.Scheduler
}

func newRig(t *testing.T, dt float64, physics ecs.System) *rig {
	t.Helper()
	w := ecs.NewWorld()
	w.SetDelta(dt)
	// Key state lives on an input entity; boxes-only rigs still need one.
	if err := ecs.Add(w, ecs.CreateEntity(w), component.InputComponent.Kind(), &component.Input{}); err != nil {
		t.Fatalf("controller: %v", err)
	}
	src := &ManualSource{}
	return &rig{w: w, src: src, sched: NewPipeline(src, physics, false)}
}

// kinematics integrates velocity into position for entities that are not
// rewinding, standing in for the physics engine where collisions do not
// matter.
func kinematics(gravity float64) ecs.System {
	return ecs.SystemFunc(func(w *ecs.World) {
		dt := w.Time().Delta
		ecs.ForEach2(w, component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, tr *component.Transform, v *component.Velocity) {
			if h, ok := ecs.Get(w, e, component.HistoryComponent.Kind()); ok && h.Rewinding() {
				return
			}
			if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
				v.Y += gravity * g.Scale * dt
			}
			tr.X += v.X * dt
			tr.Y += v.Y * dt
			tr.Rotation += v.Angular * dt
		})
	})
}

type spawnOpts struct {
	x, y   float64
	vel    component.Velocity
	player bool
	period float64
}

func (r *rig) spawn(t *testing.T, o spawnOpts) ecs.Entity {
	t.Helper()
	w := r.w
	e := ecs.CreateEntity(w)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("spawn: %v", err)
		}
	}
	vel := o.vel
	must(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: o.x, Y: o.y, ScaleX: 1, ScaleY: 1}))
	must(ecs.Add(w, e, component.VelocityComponent.Kind(), &vel))
	must(ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: restGravityScale, Rest: restGravityScale}))
	must(ecs.Add(w, e, component.HistoryComponent.Kind(), component.NewHistory(o.period)))
	if o.player {
		must(ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
		must(ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 300, JumpSpeed: 600}))
		must(ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
		must(ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{}))
	} else {
		must(ecs.Add(w, e, component.BoxTagComponent.Kind(), &component.BoxTag{}))
	}
	return e
}

// tick runs n ticks with exactly the given actions held.
func (r *rig) tick(n int, held ...component.Action) {
	r.src.Held = component.NewActionSet(held...)
	for i := 0; i < n; i++ {
		r.sched.Update(r.w)
	}
}

func (r *rig) history(t *testing.T, e ecs.Entity) *component.History {
	t.Helper()
	h, ok := ecs.Get(r.w, e, component.HistoryComponent.Kind())
	if !ok {
		t.Fatalf("entity %s has no history", e)
	}
	return h
}

func (r *rig) transform(t *testing.T, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(r.w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %s has no transform", e)
	}
	return tr
}

func (r *rig) velocity(t *testing.T, e ecs.Entity) *component.Velocity {
	t.Helper()
	v, ok := ecs.Get(r.w, e, component.VelocityComponent.Kind())
	if !ok {
		t.Fatalf("entity %s has no velocity", e)
	}
	return v
}

func (r *rig) gravity(t *testing.T, e ecs.Entity) float64 {
	t.Helper()
	g, ok := ecs.Get(r.w, e, component.GravityScaleComponent.Kind())
	if !ok {
		t.Fatalf("entity %s has no gravity scale", e)
	}
	return g.Scale
}
