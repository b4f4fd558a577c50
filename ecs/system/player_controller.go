package system

import (
	"math"

	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
)

// PlayerControllerSystem turns Input into Mover velocity: horizontal speed
// from the stick, gravity, and a jump while grounded (or for a few frames
// after walking off a ledge).
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.MoverComponent.Kind(), func(_ ecs.Entity, player *component.Player, input *component.Input, mover *component.Mover) {
		vel := mover.Velocity
		vel.X = input.MoveX * player.MoveSpeed
		canJump := mover.Grounded() || player.Coyote > 0

		// Contacts are from the previous movement pass.
		switch {
		case mover.Grounded():
			player.Coyote = player.CoyoteFrames
			// Keep a small downward step so the next sweep still finds the floor.
			vel.Y = player.Gravity * dt
		default:
			if player.Coyote > 0 {
				player.Coyote--
			}
			vel.Y += player.Gravity * dt
			if mover.OnCeiling != 0 && vel.Y < 0 {
				vel.Y = 0
			}
		}
		if player.MaxFall > 0 {
			vel.Y = math.Min(vel.Y, player.MaxFall)
		}

		if input.JumpPressed && canJump {
			vel.Y = -player.JumpSpeed
			player.Coyote = 0
		}
		mover.Velocity = vel
	})
}
