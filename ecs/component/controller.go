package component

// Controller drives a Mover's velocity from a tengo script under
// prefabs/scripts. Speed and Gravity are exposed to the script.
type Controller struct {
	Script  string
	Speed   float64
	Gravity float64
	// Direction is script-owned state carried between frames.
	Direction float64
}

var ControllerComponent = NewComponent[Controller]()
