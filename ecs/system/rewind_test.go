package system

import (
	"math"
	"testing"

	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestHistoryRecordsOnePerPeriod(t *testing.T) {
	cases := []struct {
		name   string
		period float64
		ticks  int
		want   int
	}{
		{"period_one_tick", 1, 25, 25},
		{"period_two_ticks", 2, 25, 12},
		{"period_zero_means_every_tick", 0, 7, 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, 1, kinematics(0))
			box := r.spawn(t, spawnOpts{vel: component.Velocity{X: 5}, period: c.period})
			r.tick(c.ticks)
			if got := r.history(t, box).Len(); got != c.want {
				t.Fatalf("expected %d samples, got %d", c.want, got)
			}
		})
	}
}

func TestRoundTripRestoresFirstSnapshot(t *testing.T) {
	const k = 8
	r := newRig(t, 1, kinematics(1))
	box := r.spawn(t, spawnOpts{x: 10, y: 20, vel: component.Velocity{X: 3, Y: -2, Angular: 0.5}, period: 1})

	r.tick(1)
	first := r.history(t, box).Samples[0]
	r.tick(k - 1)
	if got := r.history(t, box).Len(); got != k {
		t.Fatalf("expected %d samples before rewind, got %d", k, got)
	}

	r.tick(k, component.ActionRewindGlobal)

	h := r.history(t, box)
	if h.Len() != 0 {
		t.Fatalf("expected history drained, %d left", h.Len())
	}
	if h.State != component.RewindingGlobal {
		t.Fatalf("expected still rewinding on the draining tick, got %s", h.State)
	}
	tr := r.transform(t, box)
	v := r.velocity(t, box)
	if !near(tr.X, first.Transform.X) || !near(tr.Y, first.Transform.Y) || !near(tr.Rotation, first.Transform.Rotation) {
		t.Fatalf("transform %+v, want %+v", *tr, first.Transform)
	}
	if *v != first.Velocity {
		t.Fatalf("velocity %+v, want %+v", *v, first.Velocity)
	}
}

func TestIdleIsIdempotent(t *testing.T) {
	r := newRig(t, 1, kinematics(1))
	box := r.spawn(t, spawnOpts{period: 1})

	for i := 1; i <= 20; i++ {
		r.tick(1)
		h := r.history(t, box)
		if h.State != component.RewindIdle {
			t.Fatalf("tick %d: expected idle, got %s", i, h.State)
		}
		if h.Len() != i {
			t.Fatalf("tick %d: expected %d samples, got %d", i, i, h.Len())
		}
		if g := r.gravity(t, box); g != restGravityScale {
			t.Fatalf("tick %d: gravity scale changed to %v", i, g)
		}
	}
}

func TestGlobalPreemptsLocal(t *testing.T) {
	r := newRig(t, 1, kinematics(0))
	player := r.spawn(t, spawnOpts{player: true, period: 1})
	r.tick(5)

	r.tick(1, component.ActionRewindGlobal, component.ActionRewindLocal)
	if got := r.history(t, player).State; got != component.RewindingGlobal {
		t.Fatalf("expected rewinding_global, got %s", got)
	}
	if got := r.history(t, player).Len(); got != 4 {
		t.Fatalf("expected exactly one sample played back, %d left", got)
	}
}

func TestLocalYieldsToGlobalThroughIdle(t *testing.T) {
	r := newRig(t, 1, kinematics(0))
	player := r.spawn(t, spawnOpts{player: true, period: 1})
	r.tick(6)

	r.tick(1, component.ActionRewindLocal)
	if got := r.history(t, player).State; got != component.RewindingLocal {
		t.Fatalf("expected rewinding_local, got %s", got)
	}

	r.tick(1, component.ActionRewindLocal, component.ActionRewindGlobal)
	if got := r.history(t, player).State; got != component.RewindIdle {
		t.Fatalf("asserting global during local rewind should go idle first, got %s", got)
	}

	r.tick(1, component.ActionRewindLocal, component.ActionRewindGlobal)
	if got := r.history(t, player).State; got != component.RewindingGlobal {
		t.Fatalf("expected rewinding_global on the following tick, got %s", got)
	}
}

func TestStarvedRewindEndsTickIdle(t *testing.T) {
	for _, action := range []component.Action{component.ActionRewindGlobal, component.ActionRewindLocal} {
		t.Run(action.String(), func(t *testing.T) {
			r := newRig(t, 1, kinematics(0))
			player := r.spawn(t, spawnOpts{x: 1, y: 2, player: true, period: 1})

			r.tick(1, action)
			h := r.history(t, player)
			if h.State != component.RewindIdle {
				t.Fatalf("expected idle with no samples, got %s", h.State)
			}
			if g := r.gravity(t, player); g != restGravityScale {
				t.Fatalf("gravity should stay at rest value, got %v", g)
			}
		})
	}
}

func TestExhaustedRewindFallsBackToIdle(t *testing.T) {
	r := newRig(t, 1, kinematics(0))
	box := r.spawn(t, spawnOpts{vel: component.Velocity{X: 1}, period: 1})
	r.tick(3)

	r.tick(3, component.ActionRewindGlobal)
	h := r.history(t, box)
	if h.Len() != 0 || h.State != component.RewindingGlobal {
		t.Fatalf("expected drained and rewinding, got len=%d state=%s", h.Len(), h.State)
	}

	r.tick(1, component.ActionRewindGlobal)
	if h.State != component.RewindIdle {
		t.Fatalf("expected idle once drained, got %s", h.State)
	}
	if g := r.gravity(t, box); g != restGravityScale {
		t.Fatalf("expected gravity restored, got %v", g)
	}
}

func TestGravityScaleToggles(t *testing.T) {
	r := newRig(t, 1, kinematics(0))
	box := r.spawn(t, spawnOpts{period: 1})
	r.tick(10)

	if g := r.gravity(t, box); g != 10 {
		t.Fatalf("expected 10 before rewind, got %v", g)
	}
	r.tick(1, component.ActionRewindObject)
	if g := r.gravity(t, box); g != 0 {
		t.Fatalf("expected 0 on the first rewind tick, got %v", g)
	}
	r.tick(2, component.ActionRewindObject)
	if g := r.gravity(t, box); g != 0 {
		t.Fatalf("expected 0 throughout rewind, got %v", g)
	}
	r.tick(1)
	if g := r.gravity(t, box); g != 10 {
		t.Fatalf("expected 10 on release, got %v", g)
	}
}

func TestScopesSelectEntities(t *testing.T) {
	cases := []struct {
		name       string
		action     component.Action
		wantPlayer component.RewindState
		wantBox    component.RewindState
	}{
		{"global_takes_all", component.ActionRewindGlobal, component.RewindingGlobal, component.RewindingGlobal},
		{"local_takes_player", component.ActionRewindLocal, component.RewindingLocal, component.RewindIdle},
		{"object_takes_box", component.ActionRewindObject, component.RewindIdle, component.RewindingObject},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, 1, kinematics(0))
			player := r.spawn(t, spawnOpts{player: true, period: 1})
			box := r.spawn(t, spawnOpts{x: 50, period: 1})
			r.tick(4)

			r.tick(1, c.action)
			if got := r.history(t, player).State; got != c.wantPlayer {
				t.Fatalf("player: expected %s, got %s", c.wantPlayer, got)
			}
			if got := r.history(t, box).State; got != c.wantBox {
				t.Fatalf("box: expected %s, got %s", c.wantBox, got)
			}
		})
	}
}

func TestIdleEntityKeepsRecordingWhileOtherRewinds(t *testing.T) {
	r := newRig(t, 1, kinematics(0))
	player := r.spawn(t, spawnOpts{player: true, period: 1})
	box := r.spawn(t, spawnOpts{vel: component.Velocity{X: 2}, period: 1})
	r.tick(4)

	r.tick(3, component.ActionRewindLocal)
	if got := r.history(t, player).Len(); got != 1 {
		t.Fatalf("player should have rewound 3 of 4 samples, has %d", got)
	}
	if got := r.history(t, box).Len(); got != 7 {
		t.Fatalf("box should have kept recording, has %d", got)
	}
}

func TestMovementSuppressedWhileRewinding(t *testing.T) {
	r := newRig(t, 1, kinematics(0))
	player := r.spawn(t, spawnOpts{player: true, period: 1})

	r.tick(3, component.ActionMoveRight)
	if v := r.velocity(t, player); v.X != 300 {
		t.Fatalf("expected move speed, got %v", v.X)
	}

	r.tick(1, component.ActionMoveLeft, component.ActionRewindLocal)
	// The arbiter runs after movement, so the first rewind tick still moved;
	// playback then overwrote the pose with the newest sample.
	r.tick(1, component.ActionMoveLeft, component.ActionRewindLocal)
	if v := r.velocity(t, player); v.X != 300 {
		t.Fatalf("playback should own velocity while rewinding, got %v", v.X)
	}
}

func TestMovementZeroesHorizontalWithoutInput(t *testing.T) {
	r := newRig(t, 1, kinematics(0))
	player := r.spawn(t, spawnOpts{player: true, period: 1})

	r.tick(2, component.ActionMoveLeft)
	if v := r.velocity(t, player); v.X != -300 {
		t.Fatalf("expected -300, got %v", v.X)
	}
	r.tick(1)
	if v := r.velocity(t, player); v.X != 0 {
		t.Fatalf("expected horizontal velocity zeroed, got %v", v.X)
	}
}

func TestJumpNeedsGroundAndFreshPress(t *testing.T) {
	r := newRig(t, 1, kinematics(0))
	player := r.spawn(t, spawnOpts{player: true, period: 1})

	r.tick(1, component.ActionJump)
	if v := r.velocity(t, player); v.Y != 0 {
		t.Fatalf("airborne jump should do nothing, got vy=%v", v.Y)
	}

	pc, _ := ecs.Get(r.w, player, component.PlayerCollisionComponent.Kind())
	pc.Grounded = true
	r.tick(1, component.ActionJump)
	if v := r.velocity(t, player); v.Y != 0 {
		t.Fatalf("held jump is not a fresh press, got vy=%v", v.Y)
	}

	r.tick(1)
	r.tick(1, component.ActionJump)
	if v := r.velocity(t, player); v.Y != -600 {
		t.Fatalf("expected jump impulse -600, got vy=%v", v.Y)
	}
}

func TestRewindEvents(t *testing.T) {
	r := newRig(t, 1, kinematics(0))
	box := r.spawn(t, spawnOpts{period: 1})

	var got []ecs.Event
	r.sched.Add(ecs.SystemFunc(func(w *ecs.World) {
		got = append(got, w.Events().Pending()...)
	}))

	r.tick(2)
	r.tick(1, component.ActionRewindGlobal)
	r.tick(1)

	if len(got) != 2 {
		t.Fatalf("expected start and end events, got %v", got)
	}
	if got[0].Type != ecs.EventRewindStarted || got[1].Type != ecs.EventRewindEnded {
		t.Fatalf("unexpected event order %v", got)
	}
	re, ok := got[0].Data.(ecs.RewindEvent)
	if !ok || re.Entity != box || re.Scope != component.ScopeGlobal {
		t.Fatalf("unexpected payload %+v", got[0].Data)
	}
}
