package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rewind/config"
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/entity"
	"github.com/milk9111/rewind/ecs/render"
	"github.com/milk9111/rewind/ecs/render/view"
	"github.com/milk9111/rewind/ecs/system"
	"github.com/milk9111/rewind/levels"
	"github.com/milk9111/rewind/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var background = color.NRGBA{R: 0x1d, G: 0x22, B: 0x2b, A: 0xff}

type Game struct {
	cfg        config.Config
	configPath string

	world    *ecs.World
	physics  *system.PhysicsSystem
	sched    *ecs.Scheduler
	keyboard *KeyboardSource
	cues     *cueSystem

	renderer *render.RenderSystem
	camera   *view.Camera

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(cfg config.Config, configPath string) (*Game, error) {
	keyboard, err := NewKeyboardSource(cfg.Bindings)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:        cfg,
		configPath: configPath,
		keyboard:   keyboard,
		physics:    system.NewPhysicsSystem(cfg.Gravity),
		cues:       newCueSystem(),
		renderer:   render.NewRenderSystem(background),
		camera:     view.NewCamera(),
	}
	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if cfg.Debug {
		g.startWatcher()
	}
	return g, nil
}

// loadLevel builds a fresh world from the configured level. The old world
// is only replaced once the new one loaded.
func (g *Game) loadLevel() error {
	lvl, err := levels.Load(g.cfg.Level)
	if err != nil {
		return fmt.Errorf("load level %s: %w", g.cfg.Level, err)
	}

	world := ecs.NewWorld()
	world.SetDelta(g.cfg.Delta())
	opts := entity.Options{
		Delta:            g.cfg.Delta(),
		SamplePeriod:     g.cfg.SampleInterval(),
		RestGravityScale: g.cfg.RestGravityScale,
	}
	if _, err := entity.LoadLevelToWorld(world, lvl, opts); err != nil {
		return err
	}

	g.physics.Reset()
	sched := system.NewPipeline(g.keyboard, g.physics, g.cfg.Debug)
	sched.Add(g.cues)

	g.world = world
	g.sched = sched
	g.camera.Reset()
	return nil
}

func (g *Game) Restart() {
	if err := g.loadLevel(); err != nil {
		log.Printf("restart: %v", err)
	}
	g.paused = false
}

func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) startWatcher() {
	dirs := []string{"prefabs", "levels"}
	if g.configPath != "" {
		dirs = append(dirs, filepath.Dir(g.configPath))
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("hot reload disabled: %v", err)
		return
	}
	g.watcher = w
}

// pollWatcher rebuilds the scene when a prefab, level or config file changes.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := ""
drain:
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				break drain
			}
			changed = name
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				break drain
			}
			log.Printf("hot reload: %v", err)
		default:
			break drain
		}
	}
	if changed == "" {
		return
	}

	if g.configPath != "" && filepath.Clean(changed) == filepath.Clean(g.configPath) {
		cfg, err := config.Load(g.configPath)
		if err != nil {
			log.Printf("hot reload: %v", err)
			return
		}
		cfg.Debug = g.cfg.Debug
		g.cfg = cfg
		ebiten.SetTPS(cfg.TPS)
		g.physics = system.NewPhysicsSystem(cfg.Gravity)
	}

	log.Printf("hot reload: %s changed, rebuilding level", changed)
	if err := g.loadLevel(); err != nil {
		log.Printf("hot reload: %v", err)
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollWatcher()
	g.sched.Update(g.world)
	g.camera.Follow(g.world, baseWidth, baseHeight)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen, g.camera)
	if g.cfg.Debug {
		render.DrawPhysicsDebug(g.physics.Space(), g.camera, screen)
	}
	render.DrawHUD(g.world, screen, 10, 10)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("hot reload: close: %v", err)
		}
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
