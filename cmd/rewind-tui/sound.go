package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

const sampleRate = beep.SampleRate(44100)

// cueSystem beeps when a rewind starts, one tone per scope and tick.
type cueSystem struct{}

func newCueSystem() (*cueSystem, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &cueSystem{}, nil
}

func (cs *cueSystem) Update(w *ecs.World) {
	played := make(map[component.RewindScope]bool)
	for _, evt := range w.Events().Pending() {
		if evt.Type != ecs.EventRewindStarted {
			continue
		}
		re, ok := evt.Data.(ecs.RewindEvent)
		if !ok || played[re.Scope] {
			continue
		}
		played[re.Scope] = true
		cs.play(re.Scope)
	}
}

func (cs *cueSystem) play(scope component.RewindScope) {
	freq := 880.0
	switch scope {
	case component.ScopeLocal:
		freq = 660
	case component.ScopeObject:
		freq = 520
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	tone := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(120*time.Millisecond), sine),
		Base:     2,
		Volume:   -2,
	}
	speaker.Play(tone)
}
