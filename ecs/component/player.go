package component

// Player holds the tuning for the keyboard-driven mover.
type Player struct {
	MoveSpeed    float64
	JumpSpeed    float64
	Gravity      float64
	MaxFall      float64
	CoyoteFrames int

	// Coyote counts down the frames a jump is still allowed after leaving a
	// floor.
	Coyote int
}

var PlayerComponent = NewComponent[Player]()
