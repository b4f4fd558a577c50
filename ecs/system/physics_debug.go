package system

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	debugBodyFill   = color.NRGBA{R: 0, G: 121, B: 241, A: 128}
	debugSolid      = colornames.Steelblue
	debugOneWay     = colornames.Orange
	debugNonSolid   = colornames.Lightgrey
	debugSensing    = colornames.Limegreen
	debugContactHit = colornames.Red
)

// PhysicsDebugSystem overlays every body's box and, optionally, a readout of
// each mover's contacts.
type PhysicsDebugSystem struct {
	DrawBodies   bool
	DrawContacts bool
}

func NewPhysicsDebugSystem(drawBodies, drawContacts bool) *PhysicsDebugSystem {
	return &PhysicsDebugSystem{DrawBodies: drawBodies, DrawContacts: drawContacts}
}

func (d *PhysicsDebugSystem) Update(*ecs.World) {}

func (d *PhysicsDebugSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if d == nil || w == nil || screen == nil {
		return
	}
	if d.DrawBodies {
		DrawBodiesDebug(w, screen)
	}
	if d.DrawContacts {
		DrawContactsDebug(w, screen)
	}
}

// DrawBodiesDebug fills every body with translucent blue and outlines it by
// kind. Bodies currently sensed by any active sensor are outlined green.
func DrawBodiesDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	cam := activeCamera(w)
	zoom := cam.Scale()

	sensed := make(map[uint64]bool)
	ecs.ForEach(w, component.SensorComponent.Kind(), func(_ ecs.Entity, s *component.Sensor) {
		for _, id := range s.Overlapping {
			sensed[id] = true
		}
	})

	ecs.ForEach(w, component.BodyComponent.Kind(), func(e ecs.Entity, b *component.Body) {
		x, y, width, height := screenRect(cam, zoom, b)
		vector.FillRect(screen, x, y, width, height, debugBodyFill, false)

		outline := color.Color(debugNonSolid)
		switch {
		case sensed[e.Handle()]:
			outline = debugSensing
		case b.Solid && b.OneWay:
			outline = debugOneWay
		case b.Solid:
			outline = debugSolid
		}
		vector.StrokeRect(screen, x, y, width, height, 1, outline, false)
	})
}

// DrawContactsDebug marks the obstacles each mover touched this frame and
// prints the contact slots in the top-left corner.
func DrawContactsDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	cam := activeCamera(w)
	zoom := cam.Scale()

	var lines []string
	ecs.ForEach2(w, component.BodyComponent.Kind(), component.MoverComponent.Kind(), func(e ecs.Entity, _ *component.Body, m *component.Mover) {
		lines = append(lines, fmt.Sprintf("%v floor=%d wall=%d ceiling=%d", e, m.OnFloor, m.OnWall, m.OnCeiling))
		for _, other := range m.Collisions() {
			ob, ok := ecs.Get(w, ecs.FromHandle(other), component.BodyComponent.Kind())
			if !ok {
				continue
			}
			x, y, width, height := screenRect(cam, zoom, ob)
			vector.StrokeRect(screen, x, y, width, height, 2, debugContactHit, false)
		}
	})
	if n := len(w.Events().Collisions()); n > 0 {
		lines = append(lines, fmt.Sprintf("collision events: %d", n))
	}
	for _, t := range w.Timings() {
		if t.Name == "MovementSystem" || t.Name == "SensingSystem" {
			lines = append(lines, fmt.Sprintf("%s %v", t.Name, t.Elapsed))
		}
	}
	if len(lines) > 0 {
		ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 10, 10)
	}
}

// screenRect projects a body's bounding box into screen space. Bounds are
// min/max corners with y growing downward, so B is the top edge on screen.
func screenRect(cam *component.Camera, zoom float64, b *component.Body) (x, y, width, height float32) {
	bb := b.Bounds()
	sx, sy := cam.ToScreen(bb.L, bb.B)
	return float32(sx), float32(sy), float32((bb.R - bb.L) * zoom), float32((bb.T - bb.B) * zoom)
}
