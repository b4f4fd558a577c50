package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
	"github.com/milk9111/boxkit/physics"
)

// Overlapping returns every entity whose Body overlaps the probe box and whose
// layer intersects mask. It keeps no state and may be called between frames.
func Overlapping(w *ecs.World, pos, half cp.Vector, mask uint32) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.BodyComponent.Kind(), func(e ecs.Entity, b *component.Body) {
		if probeHits(b, pos, half, mask) {
			out = append(out, e)
		}
	})
	return out
}

// OverlappingWith is Overlapping restricted to entities that also hold a
// component of kind.
func OverlappingWith[T any](w *ecs.World, kind component.ComponentKind[T], pos, half cp.Vector, mask uint32) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach2(w, component.BodyComponent.Kind(), kind, func(e ecs.Entity, b *component.Body, _ *T) {
		if probeHits(b, pos, half, mask) {
			out = append(out, e)
		}
	})
	return out
}

func probeHits(b *component.Body, pos, half cp.Vector, mask uint32) bool {
	return b.Layer&mask != 0 && physics.Overlaps(pos, half, b.Position(), b.HalfExtent())
}
