// Package physics holds the pure geometry behind the box movement systems:
// swept time-of-impact and static overlap tests on axis-aligned boxes given
// as center + half extent.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// Margin is the skin width pushed along a collision normal after a sweep
	// so the next frame does not start inside the obstacle.
	Margin = 0.01

	// SnapThresholdSq is the squared speed below which velocities and
	// external impulses are snapped to exactly zero.
	SnapThresholdSq = 1.0
)

// NoHit is the time returned by Sweep when nothing is struck this step.
const NoHit = 1.0

// Sweep moves box 1 (pos1, half1) by vel against the stationary box 2 and
// returns the fraction of vel that can be travelled before first contact and
// the normal of the face struck. t == 1 and a zero normal mean no contact
// within this step.
func Sweep(pos1, half1, pos2, half2, vel cp.Vector) (cp.Vector, float64) {
	x1, y1 := pos1.X, pos1.Y
	w1, h1 := half1.X, half1.Y
	x2, y2 := pos2.X, pos2.Y
	w2, h2 := half2.X, half2.Y
	vx, vy := vel.X, vel.Y

	var xInvEntry, xInvExit, yInvEntry, yInvExit float64
	if vx > 0 {
		xInvEntry = (x2 - w2) - (x1 + w1)
		xInvExit = (x2 + w2) - (x1 - w1)
	} else {
		xInvEntry = (x2 + w2) - (x1 - w1)
		xInvExit = (x2 - w2) - (x1 + w1)
	}
	if vy > 0 {
		yInvEntry = (y2 - h2) - (y1 + h1)
		yInvExit = (y2 + h2) - (y1 - h1)
	} else {
		yInvEntry = (y2 + h2) - (y1 - h1)
		yInvExit = (y2 - h2) - (y1 + h1)
	}

	var xEntry, xExit, yEntry, yExit float64
	if vx == 0 {
		if x1-w1 < x2+w2 && x2-w2 < x1+w1 {
			xEntry, xExit = math.Inf(-1), math.Inf(1)
		} else {
			return cp.Vector{}, NoHit
		}
	} else {
		xEntry = xInvEntry / vx
		xExit = xInvExit / vx
	}
	if vy == 0 {
		if y1-h1 < y2+h2 && y2-h2 < y1+h1 {
			yEntry, yExit = math.Inf(-1), math.Inf(1)
		} else {
			return cp.Vector{}, NoHit
		}
	} else {
		yEntry = yInvEntry / vy
		yExit = yInvExit / vy
	}

	entry := math.Max(xEntry, yEntry)
	exit := math.Min(xExit, yExit)

	if entry > exit || (xEntry < 0 && yEntry < 0) || xEntry > 1 || yEntry > 1 {
		return cp.Vector{}, NoHit
	}

	if xEntry > yEntry {
		if xInvEntry < 0 {
			return cp.Vector{X: 1}, entry
		}
		return cp.Vector{X: -1}, entry
	}
	if yInvEntry < 0 {
		return cp.Vector{Y: 1}, entry
	}
	return cp.Vector{Y: -1}, entry
}

// Overlaps reports whether two center/half-extent boxes intersect. Touching
// edges count as overlapping.
func Overlaps(pos1, half1, pos2, half2 cp.Vector) bool {
	if math.Abs(pos1.X-pos2.X) > half1.X+half2.X {
		return false
	}
	if math.Abs(pos1.Y-pos2.Y) > half1.Y+half2.Y {
		return false
	}
	return true
}

// OverlapMinMax is Overlaps for boxes given as min/max corners.
func OverlapMinMax(min1, max1, min2, max2 cp.Vector) bool {
	if max1.X < min2.X || min1.X > max2.X {
		return false
	}
	if max1.Y < min2.Y || min1.Y > max2.Y {
		return false
	}
	return true
}

// Bounds converts a center/half-extent box to a Chipmunk bounding box.
func Bounds(pos, half cp.Vector) cp.BB {
	return cp.NewBBForExtents(pos, half.X, half.Y)
}

// Finite reports whether both components of v are finite numbers.
func Finite(v cp.Vector) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
