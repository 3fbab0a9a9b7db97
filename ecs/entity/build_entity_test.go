package entity

import (
	"math"
	"strings"
	"testing"

	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
	"github.com/milk9111/rewind/levels"
)

func TestBuildPlayerPrefab(t *testing.T) {
	w := ecs.NewWorld()
	opts := DefaultOptions()
	opts.SamplePeriod = 0.5

	e, err := BuildEntityWith(w, "player.yaml", opts)
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	for _, kind := range []component.Kind{
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PlayerCollisionComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		component.ShapeComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	} {
		if !contains(w.Query(kind), e) {
			t.Fatalf("player is missing component %d", kind.ID())
		}
	}

	player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if player.MoveSpeed != 300 {
		t.Fatalf("expected move speed 300, got %v", player.MoveSpeed)
	}
	if math.Abs(player.JumpSpeed-600) > 1e-9 {
		t.Fatalf("expected derived jump speed 600, got %v", player.JumpSpeed)
	}

	g, _ := ecs.Get(w, e, component.GravityScaleComponent.Kind())
	if g.Scale != 10 || g.Rest != 10 {
		t.Fatalf("expected gravity scale 10/10, got %+v", *g)
	}

	h, _ := ecs.Get(w, e, component.HistoryComponent.Kind())
	if h.Timer.Period != 0.5 || h.Len() != 0 || h.State != component.RewindIdle {
		t.Fatalf("unexpected fresh history %+v", *h)
	}

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.Width != 64 || body.Height != 64 || !body.FixedRotation {
		t.Fatalf("unexpected body %+v", *body)
	}
}

func TestBuildGroundIsStaticWithoutHistory(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "ground")
	if err != nil {
		t.Fatalf("build ground: %v", err)
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !body.Static {
		t.Fatalf("ground must be static")
	}
	if ecs.Has(w, e, component.HistoryComponent.Kind()) {
		t.Fatalf("ground must not record history")
	}
}

func TestBuildUnknownPrefab(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := BuildEntity(w, "nope.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
	if got := len(ecs.Entities(w)); got != 0 {
		t.Fatalf("failed build left %d entities behind", got)
	}
}

func TestLoadReferenceLevel(t *testing.T) {
	w := ecs.NewWorld()
	lvl, err := levels.LoadLevelFromFS("reference.json")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	lvl.Origin = levels.Point{X: 640, Y: 200}

	spawned, err := LoadLevelToWorld(w, lvl, DefaultOptions())
	if err != nil {
		t.Fatalf("load level to world: %v", err)
	}
	if len(spawned) != len(lvl.Entities) {
		t.Fatalf("expected %d entities, got %d", len(lvl.Entities), len(spawned))
	}

	players := w.Query(component.PlayerTagComponent.Kind())
	if len(players) != 1 {
		t.Fatalf("expected one player, got %d", len(players))
	}
	tr, _ := ecs.Get(w, players[0], component.TransformComponent.Kind())
	if tr.X != 640 || tr.Y != 300 {
		t.Fatalf("player placed at (%v,%v), want (640,300)", tr.X, tr.Y)
	}

	if boxes := w.Query(component.BoxTagComponent.Kind()); len(boxes) != 3 {
		t.Fatalf("expected three boxes, got %d", len(boxes))
	}

	var named bool
	ecs.ForEach(w, component.NameComponent.Kind(), func(_ ecs.Entity, n *component.Name) {
		if n.Value == "crate_c" {
			named = true
		}
	})
	if !named {
		t.Fatalf("level names should override prefab names")
	}
}

func TestLoadLevelRollsBackOnError(t *testing.T) {
	w := ecs.NewWorld()
	lvl := &levels.Level{
		Name: "broken",
		Entities: []levels.Entity{
			{Prefab: "player.yaml"},
			{Prefab: "missing.yaml"},
		},
	}
	_, err := LoadLevelToWorld(w, lvl, DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), "entity 1") {
		t.Fatalf("expected error naming entity 1, got %v", err)
	}
	if got := len(ecs.Entities(w)); got != 0 {
		t.Fatalf("expected rollback, %d entities remain", got)
	}
}

func contains(list []ecs.Entity, e ecs.Entity) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}
