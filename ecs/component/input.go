package component

// Input stores per-frame input state for an entity.
type Input struct {
	// Held is every action whose key is down this tick.
	Held ActionSet
	// Pressed is every action whose key went down this tick.
	Pressed ActionSet

	MoveX       float64
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
