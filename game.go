package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/boxkit/config"
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
	"github.com/milk9111/boxkit/ecs/entity"
	"github.com/milk9111/boxkit/ecs/system"
	"github.com/milk9111/boxkit/levels"
	"github.com/milk9111/boxkit/prefabs"
	"github.com/milk9111/boxkit/trace"
)

type Game struct {
	cfg   *config.Config
	level *levels.Level
	world *ecs.World

	scripts *system.ScriptControllerSystem
	debug   *system.PhysicsDebugSystem
	watcher *prefabs.Watcher
	trace   *trace.File
}

func NewGame(cfg *config.Config) (*Game, error) {
	lvl, err := levels.LoadLevelFromFS(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", cfg.Level, err)
	}

	g := &Game{
		cfg:   cfg,
		level: lvl,
		debug: system.NewPhysicsDebugSystem(cfg.Debug.DrawBodies, cfg.Debug.DrawContacts),
	}
	if cfg.TraceFile != "" {
		f, err := trace.Create(cfg.TraceFile)
		if err != nil {
			return nil, err
		}
		g.trace = f
	}
	if err := g.reset(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// Watch reloads prefabs and scripts from dirs when they change on disk.
func (g *Game) Watch(dirs ...string) error {
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return fmt.Errorf("watch prefabs: %w", err)
	}
	g.watcher = w
	return nil
}

// reset builds a fresh world from the level.
func (g *Game) reset() error {
	world := ecs.NewWorld()
	ents, err := entity.LoadLevelToWorld(world, g.level, entity.Options{DefaultFriction: g.cfg.Physics.DefaultFriction})
	if err != nil {
		return err
	}

	for _, e := range ents {
		if cam, ok := ecs.Get(world, e, component.CameraComponent.Kind()); ok {
			cam.ViewWidth = float64(g.cfg.Window.Width)
			cam.ViewHeight = float64(g.cfg.Window.Height)
		}
		if ecs.Has(world, e, component.PlayerTagComponent.Kind()) {
			if body, ok := ecs.Get(world, e, component.BodyComponent.Kind()); ok {
				_ = ecs.Add(world, e, component.SafeRespawnComponent.Kind(), &component.SafeRespawn{Point: body.Position(), Initialized: true})
			}
		}
	}

	g.scripts = system.NewScriptControllerSystem()
	movement := system.NewMovementSystem(g.cfg.Physics)

	world.AddSystem(system.NewInputSystem())
	world.AddSystem(system.NewPlayerControllerSystem())
	world.AddSystem(g.scripts)
	world.AddSystem(movement)
	world.AddSystem(system.NewSensingSystem())
	world.AddSystem(system.NewPickupCollectSystem())
	world.AddSystem(system.NewRespawnSystem())
	world.AddSystem(system.NewCameraSystem())
	if g.trace != nil {
		world.AddSystem(trace.NewSystem(g.trace.Recorder, movement))
	}

	world.AddSystem(system.NewRenderSystem())
	world.AddSystem(g.debug)

	g.world = world
	return nil
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug.DrawBodies = !g.debug.DrawBodies
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.debug.DrawContacts = !g.debug.DrawContacts
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			log.Printf("game: reset: %v", err)
		}
	}

	g.world.Update(g.cfg.Delta())
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			switch change.Kind {
			case prefabs.ChangeScript:
				log.Printf("prefabs: reloading script %s", change.Name())
				g.scripts.Invalidate(change.Name())
			case prefabs.ChangePrefab:
				log.Printf("prefabs: %s changed, rebuilding level", change.Name())
				if err := g.reset(); err != nil {
					log.Printf("prefabs: rebuild: %v", err)
				}
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("prefabs: watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)

	hud := fmt.Sprintf("FPS: %.1f  [F1] bodies  [F2] contacts  [R] reset", ebiten.ActualFPS())
	if player, ok := g.world.First(component.PlayerTagComponent.Kind()); ok {
		if counter, ok := ecs.Get(g.world, player, component.PickupCounterComponent.Kind()); ok {
			hud += fmt.Sprintf("\ncoins: %d  deaths: %d", counter.Collected, counter.Deaths)
		}
	}
	ebitenutil.DebugPrintAt(screen, hud, 10, g.cfg.Window.Height-36)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.trace != nil {
		if err := g.trace.Close(); err != nil {
			log.Printf("trace: close: %v", err)
		}
	}
}
