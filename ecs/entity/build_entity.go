package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
	"github.com/milk9111/rewind/prefabs"
	"golang.org/x/image/colornames"
)

// jumpFrames converts the move speed into the jump impulse: the player
// gains MoveSpeed*dt per tick and a jump is worth this many ticks of it.
const jumpFrames = 120

// Options carries the world-wide settings prefabs are resolved against.
type Options struct {
	// Delta is the fixed tick in seconds.
	Delta float64
	// SamplePeriod is the default history cadence in seconds.
	SamplePeriod float64
	// RestGravityScale is used when a prefab's gravity_scale omits scale.
	RestGravityScale float64
}

func DefaultOptions() Options {
	return Options{
		Delta:            ecs.DefaultDelta,
		SamplePeriod:     ecs.DefaultDelta,
		RestGravityScale: 10,
	}
}

type buildContext struct {
	PrefabPath string
	Options
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":       addPlayerTag,
	"box_tag":          addBoxTag,
	"ground_tag":       addGroundTag,
	"name":             addName,
	"player":           addPlayer,
	"input":            addInput,
	"player_collision": addPlayerCollision,
	"transform":        addTransform,
	"velocity":         addVelocity,
	"shape":            addShape,
	"physics_body":     addPhysicsBody,
	"gravity_scale":    addGravityScale,
	"history":          addHistory,
}

// physics_body reads the transform, so transform must come first.
var componentBuildOrder = []string{
	"player_tag",
	"box_tag",
	"ground_tag",
	"name",
	"player",
	"input",
	"player_collision",
	"transform",
	"velocity",
	"shape",
	"physics_body",
	"gravity_scale",
	"history",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWith(w, prefabPath, DefaultOptions())
}

func BuildEntityWith(w *ecs.World, prefabPath string, opts Options) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Options: opts}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addBoxTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BoxTagComponent.Kind(), &component.BoxTag{})
}

func addGroundTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{})
}

type nameSpec = prefabs.NameComponentSpec

// addName accepts either a bare string or {value: ...}.
func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	if s, ok := raw.(string); ok {
		return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: s})
	}
	spec, err := prefabs.DecodeComponentSpec[nameSpec](raw)
	if err != nil {
		return fmt.Errorf("decode name spec: %w", err)
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Value})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.MoveSpeed <= 0 {
		return fmt.Errorf("player move_speed must be positive, got %v", spec.MoveSpeed)
	}
	jump := spec.JumpSpeed
	if jump <= 0 {
		jump = spec.MoveSpeed * ctx.Delta * jumpFrames
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: jump,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayerCollision(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type velocitySpec = prefabs.VelocityComponentSpec

func addVelocity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[velocitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode velocity spec: %w", err)
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{
		X:       spec.X,
		Y:       spec.Y,
		Angular: spec.Angular,
	})
}

type shapeSpec = prefabs.ShapeComponentSpec

func addShape(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[shapeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shape spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("shape needs a positive size, got %vx%v", spec.Width, spec.Height)
	}
	c := toNRGBA(colornames.Lightslategray)
	if spec.Color != nil {
		c = spec.Color.NRGBA
	}
	return ecs.Add(w, e, component.ShapeComponent.Kind(), &component.Shape{
		Width:  spec.Width,
		Height: spec.Height,
		Color:  c,
	})
}

func toNRGBA(c color.RGBA) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}

	width := spec.Width
	height := spec.Height
	if spec.ScaleWithTransform {
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && tr != nil {
			width *= tr.ScaleX
			height *= tr.ScaleY
		}
	}
	// Fall back to the drawn size so prefabs only state it once.
	if width == 0 || height == 0 {
		if shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind()); ok {
			if width == 0 {
				width = shape.Width
			}
			if height == 0 {
				height = shape.Height
			}
		}
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         width,
		Height:        height,
		Radius:        spec.Radius,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Static:        spec.Static,
		FixedRotation: spec.FixedRotation,
	})
}

type gravityScaleSpec = prefabs.GravityScaleComponentSpec

func addGravityScale(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravityScaleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity scale spec: %w", err)
	}
	scale := ctx.RestGravityScale
	if spec.Scale != nil {
		scale = *spec.Scale
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: scale, Rest: scale})
}

type historySpec = prefabs.HistoryComponentSpec

func addHistory(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[historySpec](raw)
	if err != nil {
		return fmt.Errorf("decode history spec: %w", err)
	}
	if spec.Period < 0 {
		return fmt.Errorf("history period must not be negative, got %v", spec.Period)
	}
	period := spec.Period
	if period == 0 {
		period = ctx.SamplePeriod
	}
	return ecs.Add(w, e, component.HistoryComponent.Kind(), component.NewHistory(period))
}
