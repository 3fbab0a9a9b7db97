package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/rewind/assets"
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

// cueSystem plays a sound when a rewind starts. Several entities usually
// start together, so each scope plays at most once per tick.
type cueSystem struct {
	players map[component.RewindScope]*audio.Player
}

func newCueSystem() *cueSystem {
	cs := &cueSystem{players: make(map[component.RewindScope]*audio.Player)}
	for _, scope := range []component.RewindScope{component.ScopeGlobal, component.ScopeLocal, component.ScopeObject} {
		p, err := assets.RewindCue(scope)
		if err != nil {
			log.Printf("audio: %v", err)
			continue
		}
		cs.players[scope] = p
	}
	return cs
}

func (cs *cueSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	played := make(map[component.RewindScope]bool)
	for _, evt := range w.Events().Pending() {
		if evt.Type != ecs.EventRewindStarted {
			continue
		}
		re, ok := evt.Data.(ecs.RewindEvent)
		if !ok || played[re.Scope] {
			continue
		}
		p := cs.players[re.Scope]
		if p == nil {
			continue
		}
		played[re.Scope] = true
		if err := p.SetPosition(0); err != nil {
			log.Printf("audio: rewind cue %s: %v", re.Scope, err)
			continue
		}
		p.Play()
	}
}
