package ecs

import "github.com/milk9111/boxkit/ecs/component"

// Query returns the live entities holding every kind, in the dense order of
// the smallest store.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		if k == nil || !k.Valid() {
			return nil
		}
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}

	// iterate smaller set
	base := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < base.Len() {
			base = s
		}
	}

	out := make([]Entity, 0, base.Len())
	ids, _ := base.snapshot()
	for _, id := range ids {
		if !hasAll(sets, id) {
			continue
		}
		if e, ok := w.entities.handle(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity holding every kind.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

func hasAll(sets []*SparseSet, id entityID) bool {
	for _, s := range sets {
		if !s.Has(id) {
			return false
		}
	}
	return true
}
