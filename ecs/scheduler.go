package ecs

import (
	"fmt"
	"strings"
	"time"
)

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Timing is how long one system's Update took on the last frame.
type Timing struct {
	Name    string
	Elapsed time.Duration
}

// Scheduler runs systems in registration order. Movement resolution must be
// registered before sensing so sensors see resolved positions.
type Scheduler struct {
	systems []System
	timings []Timing
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, Timing{Name: systemName(system)})
}

func (s *Scheduler) Update(w *World) {
	for i, system := range s.systems {
		start := time.Now()
		system.Update(w)
		s.timings[i].Elapsed = time.Since(start)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// Timings returns a copy of the per-system durations of the last Update, in
// update order.
func (s *Scheduler) Timings() []Timing {
	out := make([]Timing, len(s.timings))
	copy(out, s.timings)
	return out
}

// systemName strips the package and pointer from the dynamic type name, so
// *system.MovementSystem reports as "MovementSystem".
func systemName(system System) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", system), "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
