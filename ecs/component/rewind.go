package component

// RewindState is the per-entity rewind mode. Exactly one value applies at a
// time, so "rewinding globally and locally" cannot be represented.
type RewindState uint8

const (
	RewindIdle RewindState = iota
	RewindingGlobal
	RewindingLocal
	RewindingObject
)

func (s RewindState) String() string {
	switch s {
	case RewindIdle:
		return "idle"
	case RewindingGlobal:
		return "rewinding_global"
	case RewindingLocal:
		return "rewinding_local"
	case RewindingObject:
		return "rewinding_object"
	default:
		return "unknown"
	}
}

// Scope reports which rewind scope the state belongs to. Idle has none.
func (s RewindState) Scope() (RewindScope, bool) {
	switch s {
	case RewindingGlobal:
		return ScopeGlobal, true
	case RewindingLocal:
		return ScopeLocal, true
	case RewindingObject:
		return ScopeObject, true
	default:
		return 0, false
	}
}

// RewindScope selects which entities a rewind command affects.
type RewindScope uint8

const (
	// ScopeGlobal rewinds every entity with a history.
	ScopeGlobal RewindScope = iota
	// ScopeLocal rewinds player-tagged entities.
	ScopeLocal
	// ScopeObject rewinds everything that is not the player.
	ScopeObject
)

func (s RewindScope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeLocal:
		return "local"
	case ScopeObject:
		return "object"
	default:
		return "unknown"
	}
}

// State is the rewind state an entity enters when this scope takes it.
func (s RewindScope) State() RewindState {
	switch s {
	case ScopeGlobal:
		return RewindingGlobal
	case ScopeLocal:
		return RewindingLocal
	case ScopeObject:
		return RewindingObject
	default:
		return RewindIdle
	}
}

// Action is the input that triggers this scope.
func (s RewindScope) Action() Action {
	switch s {
	case ScopeLocal:
		return ActionRewindLocal
	case ScopeObject:
		return ActionRewindObject
	default:
		return ActionRewindGlobal
	}
}
