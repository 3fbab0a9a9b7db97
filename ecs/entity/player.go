package entity

import (
	"fmt"

	"github.com/milk9111/rewind/ecs"
)

func NewPlayerAt(w *ecs.World, x, y float64, opts Options) (ecs.Entity, error) {
	return newAt(w, "player.yaml", x, y, opts)
}

func NewBoxAt(w *ecs.World, x, y float64, opts Options) (ecs.Entity, error) {
	return newAt(w, "box.yaml", x, y, opts)
}

func newAt(w *ecs.World, prefab string, x, y float64, opts Options) (ecs.Entity, error) {
	entity, err := BuildEntityWith(w, prefab, opts)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("%s: override transform: %w", prefab, err)
	}
	return entity, nil
}
