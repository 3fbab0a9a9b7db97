package system

import (
	"math"
	"testing"

	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

func addBody(t *testing.T, w *ecs.World, e ecs.Entity, body component.PhysicsBody) {
	t.Helper()
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &body); err != nil {
		t.Fatalf("add physics body: %v", err)
	}
}

func addGround(t *testing.T, w *ecs.World, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		t.Fatalf("add ground transform: %v", err)
	}
	if err := ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{}); err != nil {
		t.Fatalf("add ground tag: %v", err)
	}
	addBody(t, w, e, component.PhysicsBody{Width: width, Height: height, Static: true, Friction: 1})
	return e
}

func TestPhysicsMoveThenRewindRestoresSpawn(t *testing.T) {
	r := newRig(t, 1, NewPhysicsSystem(0))
	player := r.spawn(t, spawnOpts{x: 0, y: 100, player: true, period: 1})
	addBody(t, r.w, player, component.PhysicsBody{Width: 64, Height: 64, Mass: 1, FixedRotation: true})

	r.tick(1)
	r.tick(10, component.ActionMoveRight)

	if tr := r.transform(t, player); math.Abs(tr.X-3000) > 1e-6 {
		t.Fatalf("expected player at x=3000 after moving, got %v", tr.X)
	}
	if got := r.history(t, player).Len(); got != 11 {
		t.Fatalf("expected 11 samples, got %d", got)
	}

	r.tick(11, component.ActionRewindGlobal)

	tr := r.transform(t, player)
	if math.Abs(tr.X-0) > 1e-6 || math.Abs(tr.Y-100) > 1e-6 {
		t.Fatalf("expected player back at (0,100), got (%v,%v)", tr.X, tr.Y)
	}
	if got := r.history(t, player).Len(); got != 0 {
		t.Fatalf("expected history drained, %d left", got)
	}

	// Released: the player resumes from the restored pose.
	r.tick(1)
	if got := r.history(t, player).State; got != component.RewindIdle {
		t.Fatalf("expected idle after release, got %s", got)
	}
	if tr := r.transform(t, player); math.Abs(tr.X) > 1e-6 {
		t.Fatalf("expected player to stay put after release, got x=%v", tr.X)
	}
}

func TestPhysicsSuspendsGravityWhileRewinding(t *testing.T) {
	r := newRig(t, 1.0/60.0, NewPhysicsSystem(98.1))
	box := r.spawn(t, spawnOpts{x: 0, y: 0, period: 0})
	addBody(t, r.w, box, component.PhysicsBody{Width: 32, Height: 32, Mass: 1})

	r.tick(30)
	fallen := r.transform(t, box).Y
	if fallen <= 0 {
		t.Fatalf("expected box to fall, y=%v", fallen)
	}

	r.tick(10, component.ActionRewindObject)
	y := r.transform(t, box).Y
	if y >= fallen {
		t.Fatalf("expected box to move back up while rewinding, was %v now %v", fallen, y)
	}
	if g := r.gravity(t, box); g != 0 {
		t.Fatalf("expected gravity suspended, got %v", g)
	}
}

func TestPhysicsGroundedPlayerCanJump(t *testing.T) {
	r := newRig(t, 1.0/60.0, NewPhysicsSystem(98.1))
	addGround(t, r.w, 0, 500, 2000, 250)
	player := r.spawn(t, spawnOpts{x: 0, y: 100, player: true, period: 0})
	addBody(t, r.w, player, component.PhysicsBody{Width: 64, Height: 64, Mass: 1, FixedRotation: true})

	r.tick(180)

	pc, _ := ecs.Get(r.w, player, component.PlayerCollisionComponent.Kind())
	if !pc.Grounded {
		t.Fatalf("expected player grounded after falling, y=%v", r.transform(t, player).Y)
	}
	if tr := r.transform(t, player); math.Abs(tr.Y-343) > 2 {
		t.Fatalf("expected player resting on ground top near y=343, got %v", tr.Y)
	}

	r.tick(1, component.ActionJump)
	if v := r.velocity(t, player); v.Y > -500 {
		t.Fatalf("expected upward jump velocity, got vy=%v", v.Y)
	}
}
