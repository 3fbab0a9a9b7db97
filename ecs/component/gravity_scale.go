package component

// GravityScale scales world gravity for a dynamic physics body.
// 1.0 = normal gravity, 0.0 = no gravity. Rest is the value restored when
// the body stops rewinding.
type GravityScale struct {
	Scale float64
	Rest  float64
}

var GravityScaleComponent = NewComponent[GravityScale]()
