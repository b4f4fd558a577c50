package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/boxkit/config"
	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
	"github.com/milk9111/boxkit/physics"
)

// Resolution describes how one mover was resolved during the last Update.
type Resolution struct {
	Entity ecs.Entity
	Start  cp.Vector
	End    cp.Vector
	// T is the fraction of the primary step travelled; 1 means unobstructed.
	T      float64
	Normal cp.Vector
	Other  ecs.Entity
	// Slid is set when the slide pass ran; SlideT and SlideOther describe it.
	Slid       bool
	SlideT     float64
	SlideOther ecs.Entity
}

// MovementSystem moves every Body that has a Mover by its velocity, stopping
// at the first solid obstacle along the way (swept, so fast bodies cannot
// tunnel) and optionally sliding along it with whatever displacement is left.
type MovementSystem struct {
	Margin        float64
	SnapThreshold float64
	PushTransfer  float64

	bodies  []bodyRef
	pushes  []pendingPush
	results []Resolution
	warned  map[ecs.Entity]bool
}

type bodyRef struct {
	entity ecs.Entity
	body   *component.Body
}

type sweepHit struct {
	t      float64
	normal cp.Vector
	other  ecs.Entity
}

type pendingPush struct {
	target  ecs.Entity
	impulse cp.Vector
}

func NewMovementSystem(cfg config.PhysicsConfig) *MovementSystem {
	return &MovementSystem{
		Margin:        cfg.Margin,
		SnapThreshold: cfg.SnapThreshold,
		PushTransfer:  cfg.PushTransfer,
		warned:        make(map[ecs.Entity]bool),
	}
}

// Results returns the resolutions computed by the last Update. The slice is
// reused by the next Update.
func (s *MovementSystem) Results() []Resolution {
	if s == nil {
		return nil
	}
	return s.results
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.Delta()

	// Flat list of every body; a mover skips its own index while scanning so
	// it only ever reads the others.
	s.bodies = s.bodies[:0]
	ecs.ForEach(w, component.BodyComponent.Kind(), func(e ecs.Entity, b *component.Body) {
		s.bodies = append(s.bodies, bodyRef{entity: e, body: b})
	})
	s.pushes = s.pushes[:0]
	s.results = s.results[:0]
	for e := range s.warned {
		if !w.IsAlive(e) {
			delete(s.warned, e)
		}
	}

	ecs.ForEach2(w, component.BodyComponent.Kind(), component.MoverComponent.Kind(), func(e ecs.Entity, body *component.Body, mover *component.Mover) {
		res := s.resolve(w, e, body, mover, dt)
		s.results = append(s.results, res)
		emitContacts(w, e, mover)
	})

	s.applyPushes(w)
	syncSprites(w)
}

func (s *MovementSystem) resolve(w *ecs.World, e ecs.Entity, body *component.Body, mover *component.Mover, dt float64) Resolution {
	mover.ClearContacts()

	vel := mover.Velocity.Add(mover.ExternalForces)
	mover.DecayExternal(dt, s.SnapThreshold)
	if vel.LengthSq() < s.SnapThreshold {
		vel = cp.Vector{}
	}
	step := vel.Mult(dt)
	if !physics.Finite(step) {
		if !s.warned[e] {
			log.Printf("movement: entity=%d non-finite step %v, holding position", e, step)
			s.warned[e] = true
		}
		step = cp.Vector{}
	}

	pos := body.Position()
	res := Resolution{Entity: e, Start: pos}

	hit := s.sweep(e, body, pos, step)
	pos = pos.Add(step.Mult(hit.t)).Add(hit.normal.Mult(s.Margin))
	body.SetPosition(pos)
	recordContact(mover, hit)
	s.queuePush(w, hit, vel)

	res.T, res.Normal, res.Other = hit.t, hit.normal, hit.other

	if hit.t < physics.NoHit && mover.Slide {
		n := hit.normal
		dot := (step.X*n.Y + step.Y*n.X) * (1 - hit.t)
		slide := cp.Vector{X: dot * n.Y, Y: dot * n.X}

		second := s.sweep(e, body, pos, slide)
		pos = pos.Add(slide.Mult(second.t)).Add(second.normal.Mult(s.Margin))
		body.SetPosition(pos)
		recordContact(mover, second)
		s.queuePush(w, second, vel)

		res.Slid = true
		res.SlideT, res.SlideOther = second.t, second.other
	}

	res.End = pos
	return res
}

// sweep finds the closest eligible obstacle along step. Ties keep the body
// seen first. With no hit the result has t == 1, a zero normal and no entity.
func (s *MovementSystem) sweep(self ecs.Entity, body *component.Body, pos, step cp.Vector) sweepHit {
	best := sweepHit{t: physics.NoHit}
	half := body.HalfExtent()
	for _, ref := range s.bodies {
		if !blocks(self, body, pos, ref.entity, ref.body) {
			continue
		}
		normal, t := physics.Sweep(pos, half, ref.body.Position(), ref.body.HalfExtent(), step)
		if t < best.t {
			best = sweepHit{t: t, normal: normal, other: ref.entity}
		}
	}
	return best
}

// blocks reports whether obstacle may stop body this frame.
func blocks(self ecs.Entity, body *component.Body, pos cp.Vector, other ecs.Entity, obstacle *component.Body) bool {
	if other == self || obstacle == nil || !obstacle.Solid {
		return false
	}
	if !body.CanCollide(obstacle) || excepted(self, body, other, obstacle) {
		return false
	}
	if obstacle.OneWay {
		top := obstacle.Position().Y - obstacle.HalfExtent().Y
		if pos.Y+body.HalfExtent().Y > top {
			return false
		}
	}
	return true
}

func excepted(a ecs.Entity, ab *component.Body, b ecs.Entity, bb *component.Body) bool {
	return ab.HasException(b.Handle()) || bb.HasException(a.Handle())
}

// recordContact files the obstacle under one slot chosen by the normal: any
// horizontal component is a wall, upward-facing is a floor, everything else a
// ceiling. A later hit in the same slot overwrites an earlier one.
func recordContact(m *component.Mover, hit sweepHit) {
	if !hit.other.Valid() {
		return
	}
	switch {
	case hit.normal.X != 0:
		m.OnWall = hit.other.Handle()
	case hit.normal.Y < 0:
		m.OnFloor = hit.other.Handle()
	default:
		m.OnCeiling = hit.other.Handle()
	}
}

func (s *MovementSystem) queuePush(w *ecs.World, hit sweepHit, vel cp.Vector) {
	if s.PushTransfer <= 0 || hit.t >= physics.NoHit || !hit.other.Valid() {
		return
	}
	target, ok := ecs.Get(w, hit.other, component.MoverComponent.Kind())
	if !ok || !target.Pushable {
		return
	}
	along := vel.Dot(hit.normal)
	if along >= 0 {
		return
	}
	s.pushes = append(s.pushes, pendingPush{
		target:  hit.other,
		impulse: hit.normal.Mult(along * s.PushTransfer),
	})
}

// applyPushes runs after every mover has resolved, so a push lands on the
// next frame regardless of iteration order.
func (s *MovementSystem) applyPushes(w *ecs.World) {
	for _, p := range s.pushes {
		if m, ok := ecs.Get(w, p.target, component.MoverComponent.Kind()); ok {
			m.ApplyImpulse(p.impulse)
		}
	}
}

func emitContacts(w *ecs.World, e ecs.Entity, m *component.Mover) {
	events := w.Events()
	push := func(other uint64, kind ecs.CollisionEventKind) {
		if other == 0 {
			return
		}
		events.Push(ecs.Event{
			Type: ecs.EventTypeCollision,
			Data: ecs.CollisionEvent{Entity: e, Other: ecs.FromHandle(other), Kind: kind},
		})
	}
	push(m.OnFloor, ecs.CollisionEventFloor)
	push(m.OnWall, ecs.CollisionEventWall)
	push(m.OnCeiling, ecs.CollisionEventCeiling)
}

// syncSprites copies resolved body centers into their drawables.
func syncSprites(w *ecs.World) {
	ecs.ForEach3(w, component.BodyComponent.Kind(), component.MoverComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, b *component.Body, _ *component.Mover, s *component.Sprite) {
		s.Position = b.Position()
	})
}
