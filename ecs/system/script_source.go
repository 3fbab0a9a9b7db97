package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/rewind/ecs/component"
)

// ScriptSource drives input from a tengo script. Before every tick the
// script runs with `tick` set to the frame number and must leave an array of
// action names in `held`:
//
//	held := tick <= 60 ? ["move_right"] : ["rewind_global"]
type ScriptSource struct {
	compiled *tengo.Compiled
	edges    EdgeTracker
	failed   bool
}

func NewScriptSource(src []byte) (*ScriptSource, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("tick", 0); err != nil {
		return nil, fmt.Errorf("input script: add tick: %w", err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input script: compile: %w", err)
	}
	return &ScriptSource{compiled: compiled}, nil
}

func (s *ScriptSource) Poll(frame uint64) (component.ActionSet, component.ActionSet) {
	held, err := s.run(frame)
	if err != nil {
		// Log the first failure only; a broken script fails every tick.
		if !s.failed {
			log.Printf("input script: frame %d: %v", frame, err)
			s.failed = true
		}
		held = 0
	}
	return s.edges.Next(held)
}

func (s *ScriptSource) run(frame uint64) (component.ActionSet, error) {
	if err := s.compiled.Set("tick", int64(frame)); err != nil {
		return 0, fmt.Errorf("set tick: %w", err)
	}
	if err := s.compiled.Run(); err != nil {
		return 0, fmt.Errorf("run: %w", err)
	}
	if !s.compiled.IsDefined("held") {
		return 0, fmt.Errorf("script does not define held")
	}

	var held component.ActionSet
	for _, item := range s.compiled.Get("held").Array() {
		name, ok := item.(string)
		if !ok {
			return 0, fmt.Errorf("held entry %v is not a string", item)
		}
		action, ok := component.ParseAction(name)
		if !ok {
			return 0, fmt.Errorf("unknown action %q", name)
		}
		held = held.With(action)
	}
	return held, nil
}
