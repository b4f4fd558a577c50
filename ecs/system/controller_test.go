package system

import (
	"errors"
	"testing"

	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
)

func newPlayer(t *testing.T, w *ecs.World) (ecs.Entity, *component.Player, *component.Input, *component.Mover) {
	t.Helper()
	e := w.CreateEntity()
	player := &component.Player{MoveSpeed: 100, JumpSpeed: 300, Gravity: 600, MaxFall: 400, CoyoteFrames: 2}
	input := &component.Input{}
	mover := component.NewMover(0, 0, false)
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), player); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), input); err != nil {
		t.Fatalf("add input: %v", err)
	}
	if err := ecs.Add(w, e, component.MoverComponent.Kind(), mover); err != nil {
		t.Fatalf("add mover: %v", err)
	}
	return e, player, input, mover
}

func TestPlayerControllerGravityAndMove(t *testing.T) {
	w := ecs.NewWorld()
	_, _, input, mover := newPlayer(t, w)
	w.AddSystem(NewPlayerControllerSystem())

	input.MoveX = -1
	w.Update(0.1)
	if !near(mover.Velocity.X, -100) || !near(mover.Velocity.Y, 60) {
		t.Fatalf("expected (-100, 60), got %v", mover.Velocity)
	}

	mover.Velocity.Y = 390
	w.Update(0.1)
	if mover.Velocity.Y != 400 {
		t.Fatalf("expected fall speed capped at 400, got %v", mover.Velocity.Y)
	}
}

func TestPlayerControllerJump(t *testing.T) {
	tests := []struct {
		name     string
		grounded bool
		airborne int
		wantJump bool
	}{
		{"grounded", true, 0, true},
		{"coyote", true, 1, true},
		{"coyote_expired", true, 2, false},
		{"never_grounded", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, _, input, mover := newPlayer(t, w)
			w.AddSystem(NewPlayerControllerSystem())

			if tt.grounded {
				mover.OnFloor = 99
				w.Update(0.1)
				mover.OnFloor = 0
			}
			for i := 0; i < tt.airborne; i++ {
				w.Update(0.1)
			}

			input.JumpPressed = true
			if tt.airborne == 0 && tt.grounded {
				mover.OnFloor = 99
			}
			w.Update(0.1)

			jumped := mover.Velocity.Y == -300
			if jumped != tt.wantJump {
				t.Fatalf("expected jump=%v, got velocity %v", tt.wantJump, mover.Velocity)
			}
		})
	}
}

const patrolScript = `
if dir == 0.0 {
	dir = 1.0
}
if on_wall {
	dir = -dir
}
vx = dir * speed
vy = vy + gravity * dt
`

func newScripted(t *testing.T, w *ecs.World, ctrl *component.Controller) *component.Mover {
	t.Helper()
	e := w.CreateEntity()
	m := component.NewMover(0, 0, false)
	if err := ecs.Add(w, e, component.MoverComponent.Kind(), m); err != nil {
		t.Fatalf("add mover: %v", err)
	}
	if err := ecs.Add(w, e, component.ControllerComponent.Kind(), ctrl); err != nil {
		t.Fatalf("add controller: %v", err)
	}
	return m
}

func TestScriptControllerPatrol(t *testing.T) {
	w := ecs.NewWorld()
	ctrl := &component.Controller{Script: "patrol", Speed: 50, Gravity: 10}
	mover := newScripted(t, w, ctrl)

	loads := 0
	sys := &ScriptControllerSystem{Load: func(name string) ([]byte, error) {
		loads++
		return []byte(patrolScript), nil
	}}
	w.AddSystem(sys)

	w.Update(0.5)
	if mover.Velocity.X != 50 || mover.Velocity.Y != 5 || ctrl.Direction != 1 {
		t.Fatalf("unexpected first frame: vel=%v dir=%v", mover.Velocity, ctrl.Direction)
	}

	mover.OnWall = 7
	w.Update(0.5)
	if mover.Velocity.X != -50 || ctrl.Direction != -1 {
		t.Fatalf("expected to turn around at the wall: vel=%v dir=%v", mover.Velocity, ctrl.Direction)
	}
	if loads != 1 {
		t.Fatalf("expected the compiled script to be cached, loaded %d times", loads)
	}

	sys.Invalidate("patrol")
	mover.OnWall = 0
	w.Update(0.5)
	if loads != 2 {
		t.Fatalf("expected reload after invalidate, loaded %d times", loads)
	}
}

func TestScriptControllerErrors(t *testing.T) {
	tests := []struct {
		name string
		load func(string) ([]byte, error)
	}{
		{"missing", func(string) ([]byte, error) { return nil, errors.New("not found") }},
		{"syntax", func(string) ([]byte, error) { return []byte("vx = = 1"), nil }},
		{"runtime", func(string) ([]byte, error) { return []byte(`vx = "a" - 1`), nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			mover := newScripted(t, w, &component.Controller{Script: tt.name})
			mover.SetVelocity(3, 4)
			w.AddSystem(&ScriptControllerSystem{Load: tt.load})

			w.Update(0.1)
			w.Update(0.1)
			if mover.Velocity.X != 3 || mover.Velocity.Y != 4 {
				t.Fatalf("expected a failing script to leave velocity alone, got %v", mover.Velocity)
			}
		})
	}
}

func TestScriptControllerEmbeddedScripts(t *testing.T) {
	for _, name := range []string{"scripts/patrol.tengo", "scripts/gravity.tengo"} {
		t.Run(name, func(t *testing.T) {
			w := ecs.NewWorld()
			mover := newScripted(t, w, &component.Controller{Script: name, Speed: 10, Gravity: 100, Direction: 1})
			w.AddSystem(NewScriptControllerSystem())
			w.Update(0.1)
			if !near(mover.Velocity.Y, 10) {
				t.Fatalf("expected gravity to apply, got %v", mover.Velocity)
			}
		})
	}
}
