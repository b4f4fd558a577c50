package component

import "github.com/jakecoffman/cp"

// DefaultExternalFriction is the rate at which external impulses decay.
const DefaultExternalFriction = 10.0

// Mover drives a Body through the movement pass.
//
// OnFloor, OnWall and OnCeiling hold the entity (as its uint64 handle, 0 for
// none) last contacted in that direction this frame. They are not kept
// alive by the physics systems: check the handle with the world before using
// it.
type Mover struct {
	Velocity cp.Vector

	// ExternalForces is an impulse accumulator (knockback, pushes) that decays
	// toward zero at ExternalFriction per second.
	ExternalForces   cp.Vector
	ExternalFriction float64

	OnFloor   uint64
	OnWall    uint64
	OnCeiling uint64

	Pushable bool
	Slide    bool
}

var MoverComponent = NewComponent[Mover]()

func NewMover(vx, vy float64, pushable bool) *Mover {
	return &Mover{
		Velocity:         cp.Vector{X: vx, Y: vy},
		ExternalFriction: DefaultExternalFriction,
		Pushable:         pushable,
		Slide:            true,
	}
}

func (m *Mover) SetVelocity(x, y float64) {
	m.Velocity = cp.Vector{X: x, Y: y}
}

// ApplyImpulse adds v to the external force accumulator. Non-finite impulses
// are dropped.
func (m *Mover) ApplyImpulse(v cp.Vector) {
	if !finite(v.X) || !finite(v.Y) {
		return
	}
	m.ExternalForces = m.ExternalForces.Add(v)
}

// DecayExternal lerps the external forces toward zero by friction*dt and
// snaps them to zero once their squared length drops below snapSq. Forces
// that are not finite are cleared.
func (m *Mover) DecayExternal(dt, snapSq float64) {
	m.ExternalForces = m.ExternalForces.Lerp(cp.Vector{}, m.ExternalFriction*dt)
	if sq := m.ExternalForces.LengthSq(); !finite(sq) || sq < snapSq {
		m.ExternalForces = cp.Vector{}
	}
}

func (m *Mover) ClearContacts() {
	m.OnFloor = 0
	m.OnWall = 0
	m.OnCeiling = 0
}

// Collisions returns the populated contacts in floor, wall, ceiling order.
func (m *Mover) Collisions() []uint64 {
	var out []uint64
	for _, c := range []uint64{m.OnFloor, m.OnWall, m.OnCeiling} {
		if c != 0 {
			out = append(out, c)
		}
	}
	return out
}

func (m *Mover) Grounded() bool {
	return m.OnFloor != 0
}
