package system

import (
	"testing"

	"github.com/milk9111/rewind/ecs/component"
)

func TestHoldSourceDecays(t *testing.T) {
	h := NewHoldSource(3)
	h.Press(component.ActionRewindLocal)

	want := []bool{true, true, true, false}
	for i, w := range want {
		held, pressed := h.Poll(0)
		if got := held.Has(component.ActionRewindLocal); got != w {
			t.Fatalf("poll %d: held=%v, want %v", i, got, w)
		}
		if i == 0 && !pressed.Has(component.ActionRewindLocal) {
			t.Fatalf("first poll should report the press")
		}
		if i > 0 && pressed != 0 {
			t.Fatalf("poll %d: unexpected press %s", i, pressed)
		}
	}
}

func TestHoldSourceRepeatKeepsHeld(t *testing.T) {
	h := NewHoldSource(2)
	for i := 0; i < 10; i++ {
		h.Press(component.ActionMoveRight)
		held, _ := h.Poll(0)
		if !held.Has(component.ActionMoveRight) {
			t.Fatalf("poll %d: repeated presses should stay held", i)
		}
	}
	h.Release()
	if held, _ := h.Poll(0); held != 0 {
		t.Fatalf("expected nothing held after release, got %s", held)
	}
}
