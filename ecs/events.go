package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventTypeCollision = "collision"

// CollisionEventKind identifies which contact slot a collision filled.
type CollisionEventKind string

const (
	CollisionEventFloor   CollisionEventKind = "floor"
	CollisionEventWall    CollisionEventKind = "wall"
	CollisionEventCeiling CollisionEventKind = "ceiling"
)

// CollisionEvent is emitted after a mover's resolution for each contact it
// ended the frame with. Other may already be dead by the time the event is
// read; check IsAlive before using it.
type CollisionEvent struct {
	Entity Entity
	Other  Entity
	Kind   CollisionEventKind
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Collisions returns the queued collision events without consuming them.
func (q *EventQueue) Collisions() []CollisionEvent {
	if q == nil {
		return nil
	}
	var out []CollisionEvent
	for _, evt := range q.items {
		if evt.Type != EventTypeCollision {
			continue
		}
		if ce, ok := evt.Data.(CollisionEvent); ok {
			out = append(out, ce)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
