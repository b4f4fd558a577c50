package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
	"github.com/milk9111/boxkit/prefabs"
)

var ErrNoComponents = errors.New("entity: prefab defines no components")

// Options tune how prefabs are turned into components.
type Options struct {
	// DefaultFriction applies to movers that do not set external_friction.
	// Zero means component.DefaultExternalFriction.
	DefaultFriction float64
}

type buildContext struct {
	PrefabPath string
	Options    Options
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag": addPlayerTag,
	"hazard":     addHazard,
	"pickup":     addPickup,
	"player":     addPlayer,
	"input":      addInput,
	"body":       addBody,
	"mover":      addMover,
	"sensor":     addSensor,
	"controller": addController,
	"sprite":     addSprite,
	"camera":     addCamera,
}

// Body comes before sprite so a sprite without a size can borrow the body's.
var componentBuildOrder = []string{
	"player_tag",
	"hazard",
	"pickup",
	"player",
	"input",
	"body",
	"mover",
	"sensor",
	"controller",
	"sprite",
	"camera",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWithOptions(w, prefabPath, Options{})
}

// BuildEntityAt builds the prefab and moves it to (x, y).
func BuildEntityAt(w *ecs.World, prefabPath string, x, y float64, opts Options) (ecs.Entity, error) {
	e, err := BuildEntityWithOptions(w, prefabPath, opts)
	if err != nil {
		return 0, err
	}
	SetEntityPosition(w, e, x, y)
	return e, nil
}

func BuildEntityWithOptions(w *ecs.World, prefabPath string, opts Options) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q: %w", prefabPath, ErrNoComponents)
	}

	return buildFromSpec(w, prefabPath, spec, opts)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec, opts Options) (ecs.Entity, error) {
	// Reject unknown components before creating anything.
	names := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		names = append(names, name)
	}
	order := make(map[string]int, len(componentBuildOrder))
	for i, name := range componentBuildOrder {
		order[name] = i
	}
	sort.Slice(names, func(i, j int) bool { return order[names[i]] < order[names[j]] })

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Options: opts}
	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}
	return e, nil
}

// SetEntityPosition moves the entity's body and sprite to (x, y).
func SetEntityPosition(w *ecs.World, e ecs.Entity, x, y float64) {
	pos := cp.Vector{X: x, Y: y}
	if b, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		b.SetPosition(pos)
	}
	if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		s.Position = pos
	}
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addHazard(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HazardTagComponent.Kind(), &component.HazardTag{})
}

func addPickup(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PickupTagComponent.Kind(), &component.PickupTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:    spec.MoveSpeed,
		JumpSpeed:    spec.JumpSpeed,
		Gravity:      spec.Gravity,
		MaxFall:      spec.MaxFall,
		CoyoteFrames: spec.CoyoteFrames,
	})
}

func addBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode body spec: %w", err)
	}
	layer, err := component.ParseLayers(spec.Layers)
	if err != nil {
		return err
	}
	mask, err := component.ParseLayers(spec.Mask)
	if err != nil {
		return err
	}
	solid := true
	if spec.Solid != nil {
		solid = *spec.Solid
	}

	body, err := component.NewBody(0, 0, spec.Width, spec.Height, layer, mask, solid, spec.OneWay)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.BodyComponent.Kind(), body)
}

func addMover(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MoverComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mover spec: %w", err)
	}
	if spec.ExternalFriction < 0 {
		return fmt.Errorf("external_friction must not be negative, got %v", spec.ExternalFriction)
	}

	m := component.NewMover(spec.VelocityX, spec.VelocityY, spec.Pushable)
	switch {
	case spec.ExternalFriction > 0:
		m.ExternalFriction = spec.ExternalFriction
	case ctx != nil && ctx.Options.DefaultFriction > 0:
		m.ExternalFriction = ctx.Options.DefaultFriction
	}
	if spec.Slide != nil {
		m.Slide = *spec.Slide
	}
	return ecs.Add(w, e, component.MoverComponent.Kind(), m)
}

func addSensor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SensorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sensor spec: %w", err)
	}
	mask, err := component.ParseLayers(spec.Mask)
	if err != nil {
		return err
	}
	s := component.NewSensorWithMask(mask)
	if spec.Active != nil {
		s.Active = *spec.Active
	}
	return ecs.Add(w, e, component.SensorComponent.Kind(), s)
}

func addController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ControllerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode controller spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("controller requires a script")
	}
	if _, err := prefabs.LoadScript(spec.Script); err != nil {
		return fmt.Errorf("load script %q: %w", spec.Script, err)
	}
	return ecs.Add(w, e, component.ControllerComponent.Kind(), &component.Controller{
		Script:    spec.Script,
		Speed:     spec.Speed,
		Gravity:   spec.Gravity,
		Direction: spec.Direction,
	})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	sprite := component.Sprite{
		Fill:       spec.Color.Color,
		Width:      spec.Width,
		Height:     spec.Height,
		Layer:      spec.Layer,
		FacingLeft: spec.FacingLeft,
	}
	if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		size := body.Size()
		if sprite.Width == 0 {
			sprite.Width = size.X
		}
		if sprite.Height == 0 {
			sprite.Height = size.Y
		}
		sprite.Position = body.Position()
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}

// ResizeEntity replaces the entity's body with one of the given size, keeping
// its position, flags and exceptions, and stretches its sprite to match.
func ResizeEntity(w *ecs.World, e ecs.Entity, width, height float64) error {
	old, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok {
		return fmt.Errorf("resize entity %v: no body", e)
	}
	pos := old.Position()
	body, err := component.NewBody(pos.X, pos.Y, width, height, old.Layer, old.Mask, old.Solid, old.OneWay)
	if err != nil {
		return fmt.Errorf("resize entity %v: %w", e, err)
	}
	for _, id := range old.Exceptions() {
		body.AddException(id)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), body); err != nil {
		return err
	}
	if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		s.Width, s.Height = width, height
	}
	return nil
}

func bodySize(w *ecs.World, e ecs.Entity) (cp.Vector, bool) {
	b, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return b.Size(), true
}
