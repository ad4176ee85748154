package syncview

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/syncview/deque"
	"github.com/dshills/syncview/obslist"
)

// Entry is one mirrored element: the source value and its projection.
type Entry[T, V any] struct {
	Value      T
	Projection V
}

// Transform derives a projection from a source element. It is called exactly
// once per logical insertion; the result is kept for the entry's lifetime.
type Transform[T, V any] func(T) V

// Subscription represents a registered view observer. Unsubscribe is safe to
// call more than once and from multiple goroutines.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the observer from the view.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// Option configures a view at construction.
type Option func(*config)

type config struct {
	reverse bool
}

// WithReverse makes the view enumerate in reverse source order.
func WithReverse() Option {
	return func(c *config) {
		c.reverse = true
	}
}

// View maintains a mirror of an obslist.List, pairing each element with a
// projection computed at insertion time. All methods are safe for concurrent
// use. See the package documentation for the locking rules observers and
// filter hooks live under.
type View[T, V any] struct {
	mu        sync.Mutex
	transform Transform[T, V]
	entries   *deque.Deque[Entry[T, V]]
	filter    Filter[T, V]
	reverse   bool
	changeObs map[uint64]func(obslist.Change[T])
	actionObs map[uint64]func(obslist.Action)
	nextID    uint64

	sub    *obslist.Subscription
	closed atomic.Bool
}

// New builds a view over source. The mirror is seeded and the change handler
// subscribed inside one source critical section, so no mutation can be
// missed or double-counted between the two. The view lock is not held during
// construction; lock order is always source first, view second.
func New[T, V any](source *obslist.List[T], transform Transform[T, V], opts ...Option) *View[T, V] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	v := &View[T, V]{
		transform: transform,
		filter:    NullFilter[T, V]{},
		reverse:   cfg.reverse,
		changeObs: make(map[uint64]func(obslist.Change[T])),
		actionObs: make(map[uint64]func(obslist.Action)),
	}
	v.sub = source.Attach(func(items []T) {
		entries := make([]Entry[T, V], len(items))
		for i, item := range items {
			entries[i] = Entry[T, V]{Value: item, Projection: transform(item)}
		}
		v.entries = deque.FromSlice(entries)
	}, v.apply)
	return v
}

// Len returns the number of mirrored entries. It matches the source length
// at every point outside a change delivery.
func (v *View[T, V]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.entries.Len()
}

// Reverse reports whether the view enumerates in reverse order.
func (v *View[T, V]) Reverse() bool {
	return v.reverse
}

// AttachFilter makes f the active filter, replacing the previous one without
// notifying it, and fires OnAttach for every current entry in mirror order.
// A nil f attaches the null filter.
func (v *View[T, V]) AttachFilter(f Filter[T, V]) {
	if f == nil {
		f = NullFilter[T, V]{}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = f
	for e := range v.entries.All() {
		f.OnAttach(e.Value, e.Projection)
	}
}

// ResetFilter restores the null filter. If visitor is non-nil it is applied
// to every current entry, in mirror order, before the old filter is
// discarded.
func (v *View[T, V]) ResetFilter(visitor func(value T, projection V)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if visitor != nil {
		for e := range v.entries.All() {
			visitor(e.Value, e.Projection)
		}
	}
	v.filter = NullFilter[T, V]{}
}

// OnChange registers fn to receive every translated change, re-emitted
// unmodified after the mirror and filter have been updated for it.
func (v *View[T, V]) OnChange(fn func(obslist.Change[T])) *Subscription {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.changeObs[id] = fn
	return &Subscription{cancel: func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.changeObs, id)
	}}
}

// OnStateChanged registers fn to receive just the action kind of every
// change, after the granular observers. For consumers that only need
// "something changed, rebind".
func (v *View[T, V]) OnStateChanged(fn func(obslist.Action)) *Subscription {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.actionObs[id] = fn
	return &Subscription{cancel: func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.actionObs, id)
	}}
}

// Close detaches the view from its source. The mirror keeps its final state
// and the filter is not notified. Close is idempotent and safe against
// concurrent disposal.
func (v *View[T, V]) Close() {
	if v.closed.Swap(true) {
		return
	}
	v.sub.Unsubscribe()
}

// apply is the translation handler: one source change in, mirror operations
// and filter hooks out, then re-emission to the view's own observers. The
// source lock is already held when apply runs; the view lock is taken for
// the whole translation so no reader sees a half-applied change.
func (v *View[T, V]) apply(c obslist.Change[T]) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch c.Action {
	case obslist.ActionAdd:
		v.applyAdd(c)
	case obslist.ActionRemove:
		v.applyRemove(c)
	case obslist.ActionReplace:
		v.applyReplace(c)
	case obslist.ActionMove:
		v.applyMove(c)
	case obslist.ActionReset:
		v.applyReset()
	}

	for _, fn := range v.changeObs {
		fn(c)
	}
	for _, fn := range v.actionObs {
		fn(c.Action)
	}
}

func (v *View[T, V]) applyAdd(c obslist.Change[T]) {
	// Index 0 into a non-empty mirror is the only reliable signal of a
	// front insert; an empty mirror makes front and back identical, so it
	// always appends. Batched adds only ever arrive as appends.
	front := c.Index == 0 && v.entries.Len() > 0
	for _, item := range c.Items {
		e := Entry[T, V]{Value: item, Projection: v.transform(item)}
		if front {
			v.entries.PushFront(e)
		} else {
			v.entries.PushBack(e)
		}
		v.filter.OnAdd(e.Value, e.Projection)
	}
}

func (v *View[T, V]) applyRemove(c obslist.Change[T]) {
	if !c.Batched {
		e := v.entries.RemoveAt(c.Index)
		v.filter.OnRemove(e.Value, e.Projection)
		return
	}
	// Notify while the entries still sit at their original positions, then
	// take the whole range out in one operation.
	n := len(c.Items)
	for i := 0; i < n; i++ {
		e := v.entries.At(c.Index + i)
		v.filter.OnRemove(e.Value, e.Projection)
	}
	v.entries.RemoveRange(c.Index, n)
}

func (v *View[T, V]) applyReplace(c obslist.Change[T]) {
	old := v.entries.At(c.Index)
	e := Entry[T, V]{Value: c.NewItem, Projection: v.transform(c.NewItem)}
	v.entries.Set(c.Index, e)
	v.filter.OnRemove(old.Value, old.Projection)
	v.filter.OnAdd(e.Value, e.Projection)
}

func (v *View[T, V]) applyMove(c obslist.Change[T]) {
	e := v.entries.RemoveAt(c.OldIndex)
	v.entries.Insert(c.Index, e)
	v.filter.OnMove(e.Value, e.Projection)
}

func (v *View[T, V]) applyReset() {
	if !v.filter.IsNull() {
		for e := range v.entries.All() {
			v.filter.OnRemove(e.Value, e.Projection)
		}
	}
	v.entries.Clear()
}
