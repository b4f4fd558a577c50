package ecs

import "github.com/milk9111/boxkit/ecs/component"

// World owns entities, component stores, the frame scheduler and the event
// queue.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	events    EventQueue

	delta float64
	frame uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		scheduler: NewScheduler(),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot. Handles to
// the old slot stop being alive because the generation is bumped.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	if w.scheduler == nil {
		w.scheduler = NewScheduler()
	}
	w.scheduler.Add(s)
}

// Systems returns the registered systems in update order.
func (w *World) Systems() []System {
	if w == nil || w.scheduler == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Timings reports how long each system took during the last Update.
func (w *World) Timings() []Timing {
	if w == nil || w.scheduler == nil {
		return nil
	}
	return w.scheduler.Timings()
}

// Update advances the world by dt seconds. Events pushed during the previous
// frame are dropped first, so anything queued by this frame's systems stays
// readable until the next Update.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.events.flush()
	w.delta = dt
	w.frame++
	if w.scheduler != nil {
		w.scheduler.Update(w)
	}
}

// Delta returns the elapsed time handed to the current Update.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// Frame returns how many times Update has run.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
