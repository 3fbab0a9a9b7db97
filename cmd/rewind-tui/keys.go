package main

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/rewind/config"
	"github.com/milk9111/rewind/ecs/component"
)

// keymap resolves the Ebitengine key names of the bindings to terminal
// keys. Letters match either case.
type keymap struct {
	runes map[rune]component.Action
	keys  map[tcell.Key]component.Action
}

var namedKeys = map[string]tcell.Key{
	"ArrowLeft":  tcell.KeyLeft,
	"ArrowRight": tcell.KeyRight,
	"ArrowUp":    tcell.KeyUp,
	"ArrowDown":  tcell.KeyDown,
	"Enter":      tcell.KeyEnter,
	"Tab":        tcell.KeyTab,
	"Backspace":  tcell.KeyBackspace2,
}

func newKeymap(b config.Bindings) (keymap, error) {
	km := keymap{
		runes: make(map[rune]component.Action),
		keys:  make(map[tcell.Key]component.Action),
	}
	for _, action := range component.Actions() {
		for _, name := range b.Keys(action) {
			if err := km.bind(action, name); err != nil {
				return keymap{}, err
			}
		}
	}
	return km, nil
}

func (km keymap) bind(action component.Action, name string) error {
	if name == "Space" {
		km.runes[' '] = action
		return nil
	}
	if k, ok := namedKeys[name]; ok {
		km.keys[k] = action
		return nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		km.runes[unicode.ToLower(r)] = action
		return nil
	}
	if len(name) == 6 && name[:5] == "Digit" {
		km.runes[rune(name[5])] = action
		return nil
	}
	return fmt.Errorf("terminal: no key for %q (bound to %s)", name, action)
}

func (km keymap) lookup(ev *tcell.EventKey) (component.Action, bool) {
	if ev.Key() == tcell.KeyRune {
		a, ok := km.runes[unicode.ToLower(ev.Rune())]
		return a, ok
	}
	a, ok := km.keys[ev.Key()]
	return a, ok
}
