package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
)

type CameraSystem struct {
	camEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update centers the camera on the player's body, easing toward it by the
// camera's Smoothness each frame.
func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	target, ok := w.First(component.PlayerTagComponent.Kind(), component.BodyComponent.Kind())
	if !ok {
		return
	}
	body, ok := ecs.Get(w, target, component.BodyComponent.Kind())
	if !ok {
		return
	}

	center := body.Position()
	zoom := cam.Scale()
	x := center.X - cam.ViewWidth/(2*zoom)
	y := center.Y - cam.ViewHeight/(2*zoom)

	if cam.Smoothness <= 0 || cam.Smoothness >= 1 {
		cam.X, cam.Y = x, y
		return
	}
	cam.X = cp.Lerp(cam.X, x, cam.Smoothness)
	cam.Y = cp.Lerp(cam.Y, y, cam.Smoothness)
}

// activeCamera returns the first camera in the world, or nil.
func activeCamera(w *ecs.World) *component.Camera {
	e, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
	return cam
}
