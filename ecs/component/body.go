package component

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/boxkit/physics"
)

var (
	ErrInvalidExtent   = errors.New("body: size must be finite and non-negative")
	ErrInvalidPosition = errors.New("body: position must be finite")
)

// Body is an axis-aligned collision box centered on its position.
//
// Layer is what the body is, Mask is what it reacts to: a body interacts with
// another only if other.Layer&self.Mask != 0. Non-solid bodies are never used
// as obstacles but can still be sensed. One-way bodies only block movers that
// approach from above.
//
// The position sits behind its own lock because the movement pass writes one
// body while it reads every other body in the world.
type Body struct {
	mu  sync.RWMutex
	pos cp.Vector

	half cp.Vector

	Layer  uint32
	Mask   uint32
	Solid  bool
	OneWay bool

	exceptions []uint64
}

var BodyComponent = NewComponent[Body]()

// NewBody creates a body centered at (x, y) with full size w x h.
func NewBody(x, y, w, h float64, layer, mask uint32, solid, oneWay bool) (*Body, error) {
	if !finite(x) || !finite(y) {
		return nil, fmt.Errorf("%w: (%v, %v)", ErrInvalidPosition, x, y)
	}
	if !finite(w) || !finite(h) || w < 0 || h < 0 {
		return nil, fmt.Errorf("%w: %v x %v", ErrInvalidExtent, w, h)
	}
	return &Body{
		pos:    cp.Vector{X: x, Y: y},
		half:   cp.Vector{X: w / 2, Y: h / 2},
		Layer:  layer,
		Mask:   mask,
		Solid:  solid,
		OneWay: oneWay,
	}, nil
}

// Position returns the current center.
func (b *Body) Position() cp.Vector {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pos
}

// SetPosition moves the center to p.
func (b *Body) SetPosition(p cp.Vector) {
	b.mu.Lock()
	b.pos = p
	b.mu.Unlock()
}

// Translate offsets the center by d and returns the new center.
func (b *Body) Translate(d cp.Vector) cp.Vector {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pos = b.pos.Add(d)
	return b.pos
}

// HalfExtent returns half the width and height.
func (b *Body) HalfExtent() cp.Vector {
	return b.half
}

// Size returns the full width and height.
func (b *Body) Size() cp.Vector {
	return b.half.Mult(2)
}

// Min returns the top-left corner.
func (b *Body) Min() cp.Vector {
	return b.Position().Sub(b.half)
}

// Max returns the bottom-right corner.
func (b *Body) Max() cp.Vector {
	return b.Position().Add(b.half)
}

// Bounds returns the box as a Chipmunk bounding box.
func (b *Body) Bounds() cp.BB {
	return physics.Bounds(b.Position(), b.half)
}

// CanCollide reports whether other's layer is in this body's mask.
func (b *Body) CanCollide(other *Body) bool {
	if other == nil {
		return false
	}
	return other.Layer&b.Mask != 0
}

// AddException excludes id from both solid and sensing checks against this
// body. The pair is excluded if either side lists the other.
func (b *Body) AddException(id uint64) {
	if !b.HasException(id) {
		b.exceptions = append(b.exceptions, id)
	}
}

// RemoveException drops id from the exception list.
func (b *Body) RemoveException(id uint64) {
	b.exceptions = slices.DeleteFunc(b.exceptions, func(v uint64) bool { return v == id })
}

func (b *Body) HasException(id uint64) bool {
	return slices.Contains(b.exceptions, id)
}

// Exceptions returns a copy of the exception list.
func (b *Body) Exceptions() []uint64 {
	return slices.Clone(b.exceptions)
}

// AddLayerBits sets every bit in bits on the layer.
func (b *Body) AddLayerBits(bits ...int) {
	b.Layer |= LayerOf(bits...)
}

func (b *Body) SetLayerBit(bit int, value bool) {
	SetBit(&b.Layer, bit, value)
}

func (b *Body) LayerBit(bit int) bool {
	return Bit(b.Layer, bit)
}

func (b *Body) SetMaskBit(bit int, value bool) {
	SetBit(&b.Mask, bit, value)
}

func (b *Body) MaskBit(bit int) bool {
	return Bit(b.Mask, bit)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
