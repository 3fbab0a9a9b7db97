package component

// PlayerTag marks the entity driven by movement input. Local rewind targets
// player-tagged entities; object rewind targets everything else.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// BoxTag marks a loose dynamic prop.
type BoxTag struct{}

var BoxTagComponent = NewComponent[BoxTag]()

// GroundTag marks static level geometry.
type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()
