package system

import (
	"testing"

	"github.com/milk9111/rewind/ecs/component"
)

func TestScriptSourceMapsTickToActions(t *testing.T) {
	src, err := NewScriptSource([]byte(`held := tick <= 2 ? ["move_right"] : ["move_right", "rewind_global"]`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	held, pressed := src.Poll(1)
	if held != component.NewActionSet(component.ActionMoveRight) || pressed != held {
		t.Fatalf("frame 1: held=%s pressed=%s", held, pressed)
	}
	held, pressed = src.Poll(2)
	if !held.Has(component.ActionMoveRight) || pressed != 0 {
		t.Fatalf("frame 2: held=%s pressed=%s", held, pressed)
	}
	held, pressed = src.Poll(3)
	if !held.Has(component.ActionRewindGlobal) || pressed != component.NewActionSet(component.ActionRewindGlobal) {
		t.Fatalf("frame 3: held=%s pressed=%s", held, pressed)
	}
}

func TestScriptSourceErrors(t *testing.T) {
	if _, err := NewScriptSource([]byte(`held := [`)); err == nil {
		t.Fatalf("expected compile error")
	}

	cases := []struct {
		name string
		src  string
	}{
		{"unknown_action", `held := ["fly"]`},
		{"not_a_string", `held := [1]`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src, err := NewScriptSource([]byte(c.src))
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if _, err := src.run(1); err == nil {
				t.Fatalf("expected run error")
			}
			held, _ := src.Poll(1)
			if held != 0 {
				t.Fatalf("a failing script must hold nothing, got %s", held)
			}
		})
	}
}

func TestEdgeTracker(t *testing.T) {
	var e EdgeTracker
	jump := component.NewActionSet(component.ActionJump)
	steps := []struct {
		held, pressed component.ActionSet
	}{
		{jump, jump},
		{jump, 0},
		{0, 0},
		{jump, jump},
	}
	for i, s := range steps {
		_, pressed := e.Next(s.held)
		if pressed != s.pressed {
			t.Fatalf("step %d: expected pressed=%s, got %s", i, s.pressed, pressed)
		}
	}
}
