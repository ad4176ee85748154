package syncview

import "iter"

// Entries returns the view's synchronized enumerator: a lazy, restartable
// sequence of (value, projection) pairs that pass the active filter's
// visibility predicate, in source order, or reverse source order for a
// reverse-mode view.
//
// Each traversal takes the view lock just long enough to snapshot the mirror
// and the active filter, then yields outside the lock, so a slow consumer
// never blocks change delivery. Restarting the sequence takes a fresh
// snapshot and reflects the mirror state at that later time.
func (v *View[T, V]) Entries() iter.Seq2[T, V] {
	return func(yield func(T, V) bool) {
		snapshot, filter := v.snapshot()
		for _, e := range snapshot {
			if !filter.Visible(e.Value, e.Projection) {
				continue
			}
			if !yield(e.Value, e.Projection) {
				return
			}
		}
	}
}

// Projections returns just the projection half of Entries, in the same
// order and under the same filtering.
func (v *View[T, V]) Projections() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, projection := range v.Entries() {
			if !yield(projection) {
				return
			}
		}
	}
}

// snapshot copies the mirror in enumeration order together with the filter
// active at that moment.
func (v *View[T, V]) snapshot() ([]Entry[T, V], Filter[T, V]) {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Entry[T, V], 0, v.entries.Len())
	seq := v.entries.All()
	if v.reverse {
		seq = v.entries.Backward()
	}
	for e := range seq {
		out = append(out, e)
	}
	return out, v.filter
}
