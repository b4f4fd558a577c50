package system

import (
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
)

// PickupCollectSystem reads each player's sensor after the sensing pass:
// pickups are collected and destroyed, hazards and enemies queue a respawn.
type PickupCollectSystem struct{}

func NewPickupCollectSystem() *PickupCollectSystem { return &PickupCollectSystem{} }

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.SensorComponent.Kind(), func(player ecs.Entity, _ *component.PlayerTag, sensor *component.Sensor) {
		counter, ok := ecs.Get(w, player, component.PickupCounterComponent.Kind())
		if !ok {
			counter = &component.PickupCounter{}
			if err := ecs.Add(w, player, component.PickupCounterComponent.Kind(), counter); err != nil {
				return
			}
		}

		for _, id := range sensor.Overlapping {
			other := ecs.FromHandle(id)
			if !w.IsAlive(other) {
				continue
			}
			switch {
			case ecs.Has(w, other, component.PickupTagComponent.Kind()):
				if ecs.DestroyEntity(w, other) {
					counter.Collected++
				}
			case ecs.Has(w, other, component.HazardTagComponent.Kind()) || isEnemy(w, other):
				if !ecs.Has(w, player, component.RespawnRequestComponent.Kind()) {
					_ = ecs.Add(w, player, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{Cause: id})
				}
			}
		}
	})
}

func isEnemy(w *ecs.World, e ecs.Entity) bool {
	b, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	return ok && b.LayerBit(component.LayerEnemy)
}
