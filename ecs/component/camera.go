package component

// Camera is the view used by the render and debug systems. X and Y are the
// world point drawn at the top-left corner of the screen.
type Camera struct {
	X, Y       float64
	Zoom       float64
	Smoothness float64
	ViewWidth  float64
	ViewHeight float64
}

var CameraComponent = NewComponent[Camera]()

// ToScreen maps a world point into screen space.
func (c *Camera) ToScreen(x, y float64) (float64, float64) {
	if c == nil {
		return x, y
	}
	return (x - c.X) * c.zoom(), (y - c.Y) * c.zoom()
}

func (c *Camera) zoom() float64 {
	if c == nil || c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// Scale returns the effective zoom, treating unset as 1.
func (c *Camera) Scale() float64 {
	return c.zoom()
}
