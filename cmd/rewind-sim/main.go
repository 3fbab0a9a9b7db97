// Command rewind-sim runs the simulation headless, driven by a tengo input
// script, and logs what every rewinding body does.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/milk9111/rewind/config"
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
	"github.com/milk9111/rewind/ecs/entity"
	"github.com/milk9111/rewind/ecs/system"
	"github.com/milk9111/rewind/levels"
	"github.com/milk9111/rewind/prefabs"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	scriptPath := flag.String("script", "demo", "input script: a file path or a name in prefabs/scripts")
	ticks := flag.Int("ticks", 300, "number of ticks to simulate")
	every := flag.Int("every", 30, "log entity state every N ticks (0 disables)")
	flag.Parse()

	log.SetFlags(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}

	src, err := loadScript(*scriptPath)
	if err != nil {
		log.Fatalf("rewind-sim: %v", err)
	}
	input, err := system.NewScriptSource(src)
	if err != nil {
		log.Fatalf("rewind-sim: %v", err)
	}

	lvl, err := levels.Load(cfg.Level)
	if err != nil {
		log.Fatalf("rewind-sim: %v", err)
	}

	w := ecs.NewWorld()
	w.SetDelta(cfg.Delta())
	opts := entity.Options{
		Delta:            cfg.Delta(),
		SamplePeriod:     cfg.SampleInterval(),
		RestGravityScale: cfg.RestGravityScale,
	}
	if _, err := entity.LoadLevelToWorld(w, lvl, opts); err != nil {
		log.Fatalf("rewind-sim: %v", err)
	}

	sched := system.NewPipeline(input, system.NewPhysicsSystem(cfg.Gravity), true)
	for i := 1; i <= *ticks; i++ {
		sched.Update(w)
		if *every > 0 && i%*every == 0 {
			logState(w)
		}
	}
	logState(w)
}

func loadScript(path string) ([]byte, error) {
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}
	return prefabs.LoadScript(path)
}

func logState(w *ecs.World) {
	frame := w.Time().Frame
	ecs.ForEach3(w, component.HistoryComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, h *component.History, t *component.Transform, v *component.Velocity) {
			name := e.String()
			if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
				name = n.Value
			}
			log.Printf("frame=%d entity=%s state=%s samples=%d pos=(%.1f,%.1f) rot=%.2f vel=(%.1f,%.1f)",
				frame, name, h.State, h.Len(), t.X, t.Y, t.Rotation, v.X, v.Y)
		})
}
