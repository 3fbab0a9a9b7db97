package component

// Transform is the pose of an entity. X and Y are the centre of its body in
// world pixels (y grows downward); Rotation is in radians.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
