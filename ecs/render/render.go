package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
	"github.com/milk9111/rewind/ecs/render/view"
)

// RenderSystem draws every Shape as a rotated rectangle centred on its
// Transform. Entities that are rewinding are tinted by scope.
type RenderSystem struct {
	pixel      *ebiten.Image
	background color.Color
}

func NewRenderSystem(background color.Color) *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{pixel: pixel, background: background}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image, cam *view.Camera) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.background != nil {
		screen.Fill(r.background)
	}

	zoom := 1.0
	if cam != nil && cam.Zoom > 0 {
		zoom = cam.Zoom
	}

	entities := w.Query(component.TransformComponent.Kind(), component.ShapeComponent.Kind())
	// Static geometry first, then in creation order.
	sort.SliceStable(entities, func(i, j int) bool {
		gi := ecs.Has(w, entities[i], component.GroundTagComponent.Kind())
		gj := ecs.Has(w, entities[j], component.GroundTagComponent.Kind())
		if gi != gj {
			return gi
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.ShapeComponent.Kind())

		c := s.Color
		if h, ok := ecs.Get(w, e, component.HistoryComponent.Kind()); ok {
			c = view.Tint(c, h.State)
		}

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		x, y := t.X, t.Y
		if cam != nil {
			x, y = cam.ToScreen(t.X, t.Y)
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(s.Width*sx, s.Height*sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(c)

		screen.DrawImage(r.pixel, op)
	}
}
