package system

import (
	"slices"
	"testing"

	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
)

func addSensor(t *testing.T, w *ecs.World, e ecs.Entity, s *component.Sensor) *component.Sensor {
	t.Helper()
	if err := ecs.Add(w, e, component.SensorComponent.Kind(), s); err != nil {
		t.Fatalf("add sensor: %v", err)
	}
	return s
}

func TestSensingInheritsBodyMask(t *testing.T) {
	build := func(sensorMask uint32) []uint64 {
		w := ecs.NewWorld()
		e, _ := addBody(t, w, 0, 0, 4, 4, 0, 0b0010, false, false)
		s := addSensor(t, w, e, component.NewSensorWithMask(sensorMask))
		addBody(t, w, 1, 1, 2, 2, 0b0010, 0, true, false)
		addBody(t, w, -1, 0, 2, 2, 0b0001, 0, true, false)
		addBody(t, w, 20, 0, 2, 2, 0b0010, 0, true, false)
		stepWorld(w, NewSensingSystem(), 1.0/60)
		return s.Overlapping
	}

	inherited := build(0)
	explicit := build(0b0010)
	if len(inherited) != 1 {
		t.Fatalf("expected one overlap, got %v", inherited)
	}
	if !slices.Equal(inherited, explicit) {
		t.Fatalf("expected inherited mask to match explicit mask: %v vs %v", inherited, explicit)
	}
}

func TestSensingFilters(t *testing.T) {
	tests := []struct {
		name      string
		layer     uint32
		x         float64
		exception bool
		want      bool
	}{
		{"overlapping", layerWorld, 1, false, true},
		{"touching_edge", layerWorld, 2, false, true},
		{"separated", layerWorld, 2.5, false, false},
		{"layer_not_sensed", layerPlayer, 1, false, false},
		{"excepted", layerWorld, 1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, body := addBody(t, w, 0, 0, 2, 2, 0, layerWorld, false, false)
			s := addSensor(t, w, e, component.NewSensor())
			other, _ := addBody(t, w, tt.x, 0, 2, 2, tt.layer, 0, false, false)
			if tt.exception {
				body.AddException(other.Handle())
			}

			stepWorld(w, NewSensingSystem(), 1.0/60)

			if got := s.IsOverlapping(other.Handle()); got != tt.want {
				t.Fatalf("expected overlapping=%v, got %v (%v)", tt.want, got, s.Overlapping)
			}
			if s.IsOverlapping(e.Handle()) {
				t.Fatalf("expected sensor to never report its own entity")
			}
		})
	}
}

func TestSensingExceptionOnOtherSide(t *testing.T) {
	w := ecs.NewWorld()
	e, _ := addBody(t, w, 0, 0, 2, 2, 0, layerWorld, false, false)
	s := addSensor(t, w, e, component.NewSensor())
	_, other := addBody(t, w, 0, 0, 2, 2, layerWorld, 0, false, false)
	other.AddException(e.Handle())

	stepWorld(w, NewSensingSystem(), 1.0/60)

	if len(s.Overlapping) != 0 {
		t.Fatalf("expected exception on the other body to hide it, got %v", s.Overlapping)
	}
}

func TestSensingInactiveClears(t *testing.T) {
	w := ecs.NewWorld()
	e, _ := addBody(t, w, 0, 0, 2, 2, 0, layerWorld, false, false)
	s := addSensor(t, w, e, component.NewSensor())
	addBody(t, w, 0, 0, 2, 2, layerWorld, 0, false, false)

	sensing := NewSensingSystem()
	w.AddSystem(sensing)
	w.Update(1.0 / 60)
	if len(s.Overlapping) != 1 {
		t.Fatalf("expected one overlap while active, got %v", s.Overlapping)
	}

	s.Active = false
	w.Update(1.0 / 60)
	if len(s.Overlapping) != 0 {
		t.Fatalf("expected inactive sensor to be cleared, got %v", s.Overlapping)
	}
}

func TestSensingRebuildsEachFrame(t *testing.T) {
	w := ecs.NewWorld()
	e, _ := addBody(t, w, 0, 0, 2, 2, 0, layerWorld, false, false)
	s := addSensor(t, w, e, component.NewSensor())
	other, otherBody := addBody(t, w, 0, 0, 2, 2, layerWorld, 0, false, false)

	sensing := NewSensingSystem()
	w.AddSystem(sensing)
	w.Update(1.0 / 60)
	w.Update(1.0 / 60)
	if len(s.Overlapping) != 1 || s.Overlapping[0] != other.Handle() {
		t.Fatalf("expected a single entry after two frames, got %v", s.Overlapping)
	}

	otherBody.SetPosition(otherBody.Position().Add(otherBody.Size().Mult(5)))
	w.Update(1.0 / 60)
	if len(s.Overlapping) != 0 {
		t.Fatalf("expected overlap to clear after moving away, got %v", s.Overlapping)
	}
}

func TestSensingAfterMovement(t *testing.T) {
	w := ecs.NewWorld()
	player, _ := addBody(t, w, 0, 0, 2, 2, layerPlayer, layerWorld, true, false)
	addMover(t, w, player, 60, 0)
	pickup, _ := addBody(t, w, 1.5, 0, 1, 1, layerWorld, 0, false, false)
	s := addSensor(t, w, player, component.NewSensor())

	w.AddSystem(NewMovementSystem(newPhysicsConfig()))
	w.AddSystem(NewSensingSystem())
	w.Update(1.0 / 60)

	if !s.IsOverlapping(pickup.Handle()) {
		t.Fatalf("expected sensor to see the pickup after moving onto it, got %v", s.Overlapping)
	}
}
