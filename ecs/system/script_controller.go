package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
	"github.com/milk9111/boxkit/prefabs"
)

// Globals every controller script can read. vx, vy and dir are read back
// after the script runs.
var scriptGlobals = map[string]any{
	"vx":         0.0,
	"vy":         0.0,
	"dir":        0.0,
	"speed":      0.0,
	"gravity":    0.0,
	"dt":         0.0,
	"on_floor":   false,
	"on_wall":    false,
	"on_ceiling": false,
}

// ScriptControllerSystem runs each Controller's tengo script once per frame
// to set its Mover's velocity.
type ScriptControllerSystem struct {
	// Load returns script source by name. Nil loads from prefabs.
	Load func(name string) ([]byte, error)

	cache  map[string]*tengo.Compiled
	failed map[string]bool
}

func NewScriptControllerSystem() *ScriptControllerSystem {
	return &ScriptControllerSystem{Load: prefabs.LoadScript}
}

// Invalidate drops the compiled script so the next frame reloads it.
func (s *ScriptControllerSystem) Invalidate(name string) {
	if s == nil {
		return
	}
	delete(s.cache, name)
	delete(s.failed, name)
}

func (s *ScriptControllerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.ControllerComponent.Kind(), component.MoverComponent.Kind(), func(e ecs.Entity, ctrl *component.Controller, mover *component.Mover) {
		if ctrl.Script == "" {
			return
		}
		compiled, err := s.compiled(ctrl.Script)
		if err != nil {
			if !s.failed[ctrl.Script] {
				log.Printf("script: entity=%d load %q: %v", e, ctrl.Script, err)
				s.failed[ctrl.Script] = true
			}
			return
		}
		if err := runController(compiled, ctrl, mover, dt); err != nil {
			log.Printf("script: entity=%d run %q: %v", e, ctrl.Script, err)
		}
	})
}

func (s *ScriptControllerSystem) compiled(name string) (*tengo.Compiled, error) {
	if s.cache == nil {
		s.cache = make(map[string]*tengo.Compiled)
		s.failed = make(map[string]bool)
	}
	if c, ok := s.cache[name]; ok {
		return c, nil
	}
	if s.failed[name] {
		return nil, fmt.Errorf("previous load failed")
	}

	load := s.Load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(name)
	if err != nil {
		return nil, err
	}
	c, err := compileController(src)
	if err != nil {
		return nil, err
	}
	s.cache[name] = c
	return c, nil
}

func compileController(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	for name, v := range scriptGlobals {
		if err := script.Add(name, v); err != nil {
			return nil, err
		}
	}
	script.SetImports(stdlib.GetModuleMap("math"))
	return script.Compile()
}

func runController(c *tengo.Compiled, ctrl *component.Controller, mover *component.Mover, dt float64) error {
	vars := map[string]any{
		"vx":         mover.Velocity.X,
		"vy":         mover.Velocity.Y,
		"dir":        ctrl.Direction,
		"speed":      ctrl.Speed,
		"gravity":    ctrl.Gravity,
		"dt":         dt,
		"on_floor":   mover.OnFloor != 0,
		"on_wall":    mover.OnWall != 0,
		"on_ceiling": mover.OnCeiling != 0,
	}
	for name, v := range vars {
		if err := c.Set(name, v); err != nil {
			return err
		}
	}
	if err := c.Run(); err != nil {
		return err
	}
	mover.Velocity.X = c.Get("vx").Float()
	mover.Velocity.Y = c.Get("vy").Float()
	ctrl.Direction = c.Get("dir").Float()
	return nil
}
