package component

import "strings"

// Action is a logical input the simulation understands. Physical keys are
// bound to actions by configuration.
type Action uint8

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionJump
	ActionRewindGlobal
	ActionRewindLocal
	ActionRewindObject
	actionCount
)

var actionNames = [actionCount]string{
	ActionMoveLeft:     "move_left",
	ActionMoveRight:    "move_right",
	ActionJump:         "jump",
	ActionRewindGlobal: "rewind_global",
	ActionRewindLocal:  "rewind_local",
	ActionRewindObject: "rewind_object",
}

func (a Action) String() string {
	if a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Actions lists every logical action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction resolves an action name such as "rewind_global".
func ParseAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return 0, false
}

// ActionSet is a bit set of actions.
type ActionSet uint32

func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

func (s ActionSet) Has(a Action) bool {
	return a < actionCount && s&(1<<a) != 0
}

func (s ActionSet) With(a Action) ActionSet {
	if a >= actionCount {
		return s
	}
	return s | 1<<a
}

func (s ActionSet) Without(a Action) ActionSet {
	return s &^ (1 << a)
}

func (s ActionSet) String() string {
	var names []string
	for _, a := range Actions() {
		if s.Has(a) {
			names = append(names, a.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}
