package entity

import (
	"fmt"

	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
	"github.com/milk9111/rewind/levels"
)

// LoadLevelToWorld builds every entity of lvl and places it relative to the
// level origin. On failure the entities built so far are destroyed.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level, opts Options) ([]ecs.Entity, error) {
	if world == nil || lvl == nil {
		return nil, fmt.Errorf("load level: world and level are required")
	}

	spawned := make([]ecs.Entity, 0, len(lvl.Entities))
	fail := func(err error) ([]ecs.Entity, error) {
		for _, e := range spawned {
			ecs.DestroyEntity(world, e)
		}
		return nil, err
	}

	for i, ent := range lvl.Entities {
		e, err := BuildEntityWith(world, ent.Prefab, opts)
		if err != nil {
			return fail(fmt.Errorf("load level %q: entity %d: %w", lvl.Name, i, err))
		}
		spawned = append(spawned, e)

		x := lvl.Origin.X + ent.X
		y := lvl.Origin.Y + ent.Y
		if err := SetEntityTransform(world, e, x, y, ent.Rotation); err != nil {
			return fail(fmt.Errorf("load level %q: entity %d: place: %w", lvl.Name, i, err))
		}
		if ent.Name != "" {
			if err := ecs.Add(world, e, component.NameComponent.Kind(), &component.Name{Value: ent.Name}); err != nil {
				return fail(fmt.Errorf("load level %q: entity %d: name: %w", lvl.Name, i, err))
			}
		}
	}

	return spawned, nil
}
