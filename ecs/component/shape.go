package component

import "image/color"

// Shape is the drawable rectangle of an entity, centred on its Transform.
type Shape struct {
	Width  float64
	Height float64
	Color  color.NRGBA
}

var ShapeComponent = NewComponent[Shape]()

// Name is a human readable label used by logs and overlays.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
