// Package view holds the presentation math shared by the window and the
// terminal front ends: the follow camera and the rewind tint palette.
package view

import (
	"image/color"

	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
	"golang.org/x/image/colornames"
)

// Camera centres the player on screen. X/Y is the world point drawn at the
// top-left corner.
type Camera struct {
	X, Y float64
	Zoom float64
	// Smoothness is the fraction of the remaining distance covered per
	// frame. 1 snaps.
	Smoothness float64

	placed bool
}

func NewCamera() *Camera {
	return &Camera{Zoom: 1, Smoothness: 0.15}
}

// Follow moves the camera towards the first player. The first call snaps.
func (c *Camera) Follow(w *ecs.World, screenW, screenH float64) {
	if c == nil || w == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := c.zoom()
	targetX := t.X - screenW/(2*zoom)
	targetY := t.Y - screenH/(2*zoom)

	s := c.Smoothness
	if !c.placed || s <= 0 || s > 1 {
		s = 1
	}
	c.X += (targetX - c.X) * s
	c.Y += (targetY - c.Y) * s
	c.placed = true
}

// Reset makes the next Follow snap.
func (c *Camera) Reset() {
	c.placed = false
}

func (c *Camera) ToScreen(x, y float64) (float64, float64) {
	zoom := c.zoom()
	return (x - c.X) * zoom, (y - c.Y) * zoom
}

func (c *Camera) zoom() float64 {
	if c == nil || c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// StateColor is the highlight used for an entity in the given rewind state.
func StateColor(state component.RewindState) color.NRGBA {
	switch state {
	case component.RewindingGlobal:
		return nrgba(colornames.Deepskyblue)
	case component.RewindingLocal:
		return nrgba(colornames.Orchid)
	case component.RewindingObject:
		return nrgba(colornames.Orange)
	default:
		return nrgba(colornames.White)
	}
}

// Tint blends base halfway towards the state colour. Idle entities keep
// their own colour.
func Tint(base color.NRGBA, state component.RewindState) color.NRGBA {
	if state == component.RewindIdle {
		return base
	}
	hl := StateColor(state)
	mix := func(a, b uint8) uint8 {
		return uint8((uint16(a) + uint16(b)) / 2)
	}
	return color.NRGBA{
		R: mix(base.R, hl.R),
		G: mix(base.G, hl.G),
		B: mix(base.B, hl.B),
		A: base.A,
	}
}

func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
