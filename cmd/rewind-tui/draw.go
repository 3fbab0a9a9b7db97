package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
	"github.com/milk9111/rewind/ecs/render/view"
)

// One terminal cell covers this many world pixels. Cells are about twice
// as tall as wide.
const (
	cellW = 16.0
	cellH = 32.0
)

func draw(screen tcell.Screen, w *ecs.World, cam *view.Camera) {
	cols, rows := screen.Size()
	cam.Follow(w, float64(cols)*cellW, float64(rows)*cellH)

	screen.Clear()

	ground := w.Query(component.GroundTagComponent.Kind(), component.ShapeComponent.Kind())
	for _, e := range ground {
		drawShape(screen, w, e, cam, cols, rows)
	}
	for _, e := range w.Query(component.TransformComponent.Kind(), component.ShapeComponent.Kind()) {
		if ecs.Has(w, e, component.GroundTagComponent.Kind()) {
			continue
		}
		drawShape(screen, w, e, cam, cols, rows)
	}

	drawHUD(screen, w)
	screen.Show()
}

// drawShape fills every cell whose centre lies inside the entity's rotated
// rectangle.
func drawShape(screen tcell.Screen, w *ecs.World, e ecs.Entity, cam *view.Camera, cols, rows int) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	s, _ := ecs.Get(w, e, component.ShapeComponent.Kind())

	c := s.Color
	if h, ok := ecs.Get(w, e, component.HistoryComponent.Kind()); ok {
		c = view.Tint(c, h.State)
	}
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))

	halfW, halfH := s.Width/2, s.Height/2
	reach := math.Hypot(halfW, halfH)
	cos, sin := math.Cos(-t.Rotation), math.Sin(-t.Rotation)

	x0, y0 := cam.ToScreen(t.X-reach, t.Y-reach)
	x1, y1 := cam.ToScreen(t.X+reach, t.Y+reach)
	minCol := max(0, int(math.Floor(x0/cellW)))
	maxCol := min(cols-1, int(math.Ceil(x1/cellW)))
	minRow := max(1, int(math.Floor(y0/cellH)))
	maxRow := min(rows-1, int(math.Ceil(y1/cellH)))

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			// Cell centre back in world space, then into the shape's frame.
			wx := (float64(col)+0.5)*cellW/zoom(cam) + cam.X - t.X
			wy := (float64(row)+0.5)*cellH/zoom(cam) + cam.Y - t.Y
			lx := wx*cos - wy*sin
			ly := wx*sin + wy*cos
			if math.Abs(lx) <= halfW && math.Abs(ly) <= halfH {
				screen.SetContent(col, row, ' ', nil, style)
			}
		}
	}
}

func zoom(cam *view.Camera) float64 {
	if cam.Zoom <= 0 {
		return 1
	}
	return cam.Zoom
}

func drawHUD(screen tcell.Screen, w *ecs.World) {
	line := fmt.Sprintf(" frame %d ", w.Time().Frame)
	ecs.ForEach(w, component.HistoryComponent.Kind(), func(e ecs.Entity, h *component.History) {
		name := e.String()
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
			name = n.Value
		}
		line += fmt.Sprintf("| %s %s %d ", name, h.State, h.Len())
	})
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range []rune(line) {
		screen.SetContent(i, 0, r, nil, style)
	}
}
