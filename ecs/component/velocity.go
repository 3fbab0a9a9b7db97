package component

// Velocity is the live linear (px/s) and angular (rad/s) velocity of an
// entity. The physics system mirrors it into and out of the Chipmunk body.
type Velocity struct {
	X       float64
	Y       float64
	Angular float64
}

var VelocityComponent = NewComponent[Velocity]()
