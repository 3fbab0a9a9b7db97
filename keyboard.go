package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rewind/config"
	"github.com/milk9111/rewind/ecs/component"
)

// KeyboardSource reads the bound keys of every action from Ebitengine.
type KeyboardSource struct {
	keys map[component.Action][]ebiten.Key
}

func NewKeyboardSource(b config.Bindings) (*KeyboardSource, error) {
	ks := &KeyboardSource{keys: make(map[component.Action][]ebiten.Key)}
	for _, action := range component.Actions() {
		for _, name := range b.Keys(action) {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("keyboard: bind %s to %q: %w", action, name, err)
			}
			ks.keys[action] = append(ks.keys[action], k)
		}
	}
	return ks, nil
}

func (ks *KeyboardSource) Poll(uint64) (component.ActionSet, component.ActionSet) {
	var held, pressed component.ActionSet
	for action, keys := range ks.keys {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				held = held.With(action)
			}
			if inpututil.IsKeyJustPressed(k) {
				pressed = pressed.With(action)
			}
		}
	}
	return held, pressed
}
