package entity

import (
	"fmt"

	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/levels"
)

// LoadLevelToWorld spawns every prefab placement of lvl into world and
// returns the spawned entities in placement order.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level, opts Options) ([]ecs.Entity, error) {
	if world == nil || lvl == nil {
		return nil, fmt.Errorf("load level: world and level are required")
	}

	out := make([]ecs.Entity, 0, len(lvl.Entities))
	for i, placement := range lvl.Entities {
		e, err := BuildEntityAt(world, placement.Prefab, placement.X, placement.Y, opts)
		if err != nil {
			return out, fmt.Errorf("load level %s: entity %d: %w", lvl.Name, i, err)
		}
		if placement.W > 0 || placement.H > 0 {
			if err := resizePlacement(world, e, placement); err != nil {
				return out, fmt.Errorf("load level %s: entity %d: %w", lvl.Name, i, err)
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func resizePlacement(w *ecs.World, e ecs.Entity, p levels.Entity) error {
	width, height := p.W, p.H
	if body, ok := bodySize(w, e); ok {
		if width == 0 {
			width = body.X
		}
		if height == 0 {
			height = body.Y
		}
	}
	return ResizeEntity(w, e, width, height)
}
