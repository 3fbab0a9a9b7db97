package render

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

// DrawHUD prints the frame counter, the held actions and, for every entity
// with a history, its rewind state and sample count.
func DrawHUD(w *ecs.World, screen *ebiten.Image, x, y int) {
	if w == nil || screen == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "frame %d  tps %.0f  fps %.0f\n", w.Time().Frame, ebiten.ActualTPS(), ebiten.ActualFPS())

	if e, ok := w.First(component.InputComponent.Kind()); ok {
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			fmt.Fprintf(&b, "held: %s\n", in.Held)
		}
	}

	if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
			fmt.Fprintf(&b, "grounded: %v\n", pc.Grounded || pc.GroundGrace > 0)
		}
	}

	ecs.ForEach(w, component.HistoryComponent.Kind(), func(e ecs.Entity, h *component.History) {
		name := e.String()
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
			name = n.Value
		}
		fmt.Fprintf(&b, "%-10s %-17s %5d\n", name, h.State, h.Len())
	})

	ebitenutil.DebugPrintAt(screen, b.String(), x, y)
}
