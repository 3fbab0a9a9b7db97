// Command rewind-tui plays the prototype in a terminal. Terminals report key
// presses rather than key state, so held keys are emulated from the key
// repeat.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/rewind/config"
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/entity"
	"github.com/milk9111/rewind/ecs/render/view"
	"github.com/milk9111/rewind/ecs/system"
	"github.com/milk9111/rewind/levels"
)

// holdTicks covers the pause before the terminal starts repeating a key.
const holdTicks = 30

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	logPath := flag.String("log", "", "write logs to this file (the terminal is taken by the game)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}

	keys, err := newKeymap(cfg.Bindings)
	if err != nil {
		log.Fatal(err)
	}

	w, err := buildWorld(cfg)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.EnableFocus()
	if *logPath == "" {
		// Logs would scribble over the screen.
		log.SetOutput(io.Discard)
		cfg.Debug = false
	}

	input := system.NewHoldSource(holdTicks)
	sched := system.NewPipeline(input, system.NewPhysicsSystem(cfg.Gravity), cfg.Debug)
	if !*mute {
		cues, err := newCueSystem()
		if err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			sched.Add(cues)
		}
	}

	quit := make(chan struct{})
	go pollEvents(screen, keys, input, quit)

	cam := view.NewCamera()
	ticker := time.NewTicker(time.Duration(float64(time.Second) * cfg.Delta()))
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			sched.Update(w)
			draw(screen, w, cam)
		}
	}
}

func buildWorld(cfg config.Config) (*ecs.World, error) {
	lvl, err := levels.Load(cfg.Level)
	if err != nil {
		return nil, err
	}
	w := ecs.NewWorld()
	w.SetDelta(cfg.Delta())
	opts := entity.Options{
		Delta:            cfg.Delta(),
		SamplePeriod:     cfg.SampleInterval(),
		RestGravityScale: cfg.RestGravityScale,
	}
	if _, err := entity.LoadLevelToWorld(w, lvl, opts); err != nil {
		return nil, err
	}
	return w, nil
}

func pollEvents(screen tcell.Screen, keys keymap, input *system.HoldSource, quit chan<- struct{}) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			close(quit)
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventFocus:
			if !ev.Focused {
				input.Release()
			}
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				close(quit)
				return
			}
			if action, ok := keys.lookup(ev); ok {
				input.Press(action)
			}
		}
	}
}
