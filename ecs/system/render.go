package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
)

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	cam := activeCamera(w)
	zoom := cam.Scale()

	entities := w.Query(component.SpriteComponent.Kind())
	layers := make(map[ecs.Entity]int, len(entities))
	for _, e := range entities {
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			layers[e] = s.Layer
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layers[entities[i]], layers[entities[j]]
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}
		x, y := cam.ToScreen(s.Position.X, s.Position.Y)

		if s.Image == nil {
			if s.Fill == nil || s.Width <= 0 || s.Height <= 0 {
				continue
			}
			sw, sh := s.Width*zoom, s.Height*zoom
			vector.FillRect(screen, float32(x-sw/2), float32(y-sh/2), float32(sw), float32(sh), s.Fill, false)
			continue
		}

		img := s.Image
		if s.UseSource {
			if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		if s.FacingLeft {
			op.GeoM.Scale(-1, 1)
		}
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(x, y)
		screen.DrawImage(img, op)
	}
}
