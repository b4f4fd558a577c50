package ecs

import "fmt"

// Entity packs a slot id (low 32 bits) and that slot's generation (high 32
// bits). Zero is reserved for "no entity", so the first generation is 1.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

// FromHandle turns an opaque identifier stored on a component (body
// exceptions, mover contacts, sensor overlaps) back into an Entity. It does
// not check liveness.
func FromHandle(h uint64) Entity {
	return Entity(h)
}

// Handle is the opaque identifier components store instead of an Entity, so
// the component package stays independent of the world. 0 means none.
func (e Entity) Handle() uint64 {
	return uint64(e)
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String renders the handle as slot:generation.
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e > 0
}
