package component

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Sprite is a drawable placed at Position (its center in world space). When
// the entity also has a Body and a Mover, the movement pass overwrites
// Position with the resolved body center every frame.
type Sprite struct {
	Image      *ebiten.Image
	Source     image.Rectangle
	UseSource  bool
	Position   cp.Vector
	OriginX    float64
	OriginY    float64
	FacingLeft bool
	// Layer orders drawing; lower layers draw first.
	Layer int

	// Fill and Width/Height draw a plain rectangle when Image is nil.
	Fill   color.Color
	Width  float64
	Height float64
}

var SpriteComponent = NewComponent[Sprite]()
