package component

// Input is the sampled controls for the current frame. MoveX is in [-1, 1];
// JumpPressed is true only on the frame the button went down.
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
