// Package assets owns the audio context and the sounds of the game. There
// are no binary assets: every cue is synthesised at start-up.
package assets

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/rewind/ecs/component"
)

const SampleRate = 44100

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// Context returns the process-wide audio context. Ebitengine allows only one.
func Context() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// RewindCue returns a player for the sound played when a rewind of the given
// scope starts. Each scope sweeps down from a different pitch.
func RewindCue(scope component.RewindScope) (*audio.Player, error) {
	from, to := cueRange(scope)
	pcm := Sweep(SampleRate, from, to, 0.18, 0.25)
	p := Context().NewPlayerFromBytes(pcm)
	if p == nil {
		return nil, fmt.Errorf("assets: rewind cue %s: no player", scope)
	}
	return p, nil
}

func cueRange(scope component.RewindScope) (float64, float64) {
	switch scope {
	case component.ScopeLocal:
		return 660, 330
	case component.ScopeObject:
		return 520, 260
	default:
		return 880, 220
	}
}
