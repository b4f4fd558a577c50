package system

import (
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
	"github.com/milk9111/boxkit/physics"
)

// SensingSystem rebuilds every active Sensor's overlap list from a static
// box test against all other bodies.
type SensingSystem struct {
	bodies []bodyRef
}

func NewSensingSystem() *SensingSystem {
	return &SensingSystem{}
}

func (s *SensingSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	s.bodies = s.bodies[:0]
	ecs.ForEach(w, component.BodyComponent.Kind(), func(e ecs.Entity, b *component.Body) {
		s.bodies = append(s.bodies, bodyRef{entity: e, body: b})
	})

	ecs.ForEach2(w, component.BodyComponent.Kind(), component.SensorComponent.Kind(), func(e ecs.Entity, body *component.Body, sensor *component.Sensor) {
		sensor.Overlapping = nil
		if !sensor.Active {
			return
		}
		mask := sensor.EffectiveMask(body.Mask)
		pos, half := body.Position(), body.HalfExtent()
		for _, ref := range s.bodies {
			if ref.entity == e || ref.body.Layer&mask == 0 || excepted(e, body, ref.entity, ref.body) {
				continue
			}
			if physics.Overlaps(pos, half, ref.body.Position(), ref.body.HalfExtent()) {
				sensor.Overlapping = append(sensor.Overlapping, ref.entity.Handle())
			}
		}
	})
}
