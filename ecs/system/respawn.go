package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
)

type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

// Update records a safe point for every grounded player and then performs
// pending respawn requests. Run it after the movement pass so contacts are
// current.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerTagComponent.Kind(), component.BodyComponent.Kind(), component.MoverComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, body *component.Body, mover *component.Mover) {
		if !mover.Grounded() || ecs.Has(w, e, component.RespawnRequestComponent.Kind()) {
			return
		}
		safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
		if !ok {
			safe = &component.SafeRespawn{}
			if err := ecs.Add(w, e, component.SafeRespawnComponent.Kind(), safe); err != nil {
				return
			}
		}
		safe.Point = body.Position()
		safe.Initialized = true
	})

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		defer ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
		if !ok || !safe.Initialized {
			return
		}
		if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
			body.SetPosition(safe.Point)
		}
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.Position = safe.Point
		}
		if mover, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok {
			mover.Velocity = cp.Vector{}
			mover.ExternalForces = cp.Vector{}
			mover.ClearContacts()
		}
		if counter, ok := ecs.Get(w, e, component.PickupCounterComponent.Kind()); ok {
			counter.Deaths++
		}
	})
}
