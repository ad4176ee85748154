package obslist

import (
	"errors"
	"sync"
)

// Errors returned by list mutators.
var (
	// ErrIndexOutOfRange is returned when an index does not refer to an
	// existing element.
	ErrIndexOutOfRange = errors.New("obslist: index out of range")

	// ErrRangeInvalid is returned when a start/length pair does not lie
	// within the list.
	ErrRangeInvalid = errors.New("obslist: invalid range")
)

// Observer receives one Change per list mutation. It is invoked
// synchronously while the list lock is held; see the package documentation
// for the resulting ordering rules.
type Observer[T any] func(Change[T])

// Subscription represents a registered observer. Unsubscribe is safe to
// call more than once and from multiple goroutines; only the first call
// removes the observer.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the observer from the list.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// List is an ordered, observable collection of T. All methods are safe for
// concurrent use.
type List[T any] struct {
	mu        sync.Mutex
	items     []T
	observers map[uint64]Observer[T]
	nextID    uint64
}

// New creates a list seeded with a copy of items.
func New[T any](items ...T) *List[T] {
	l := &List[T]{
		observers: make(map[uint64]Observer[T]),
	}
	if len(items) > 0 {
		l.items = append(l.items, items...)
	}
	return l
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Get returns the element at index i.
func (l *List[T]) Get(i int) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, ErrIndexOutOfRange
	}
	return l.items[i], nil
}

// Snapshot returns a copy of the current elements in order.
func (l *List[T]) Snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Subscribe registers fn to receive future changes.
func (l *List[T]) Subscribe(fn Observer[T]) *Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subscribeLocked(fn)
}

// Attach runs init with the current elements and then registers fn, all in
// one critical section, so no change can slip between the two or be seen
// twice. Callers building a mirror of the list must use this (or
// SnapshotAndSubscribe) instead of separate Snapshot and Subscribe calls.
//
// The slice passed to init is the list's backing storage: init must not
// mutate it or retain it past the call. init runs under the list lock and
// must not call back into the list.
func (l *List[T]) Attach(init func(items []T), fn Observer[T]) *Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()
	init(l.items)
	return l.subscribeLocked(fn)
}

// SnapshotAndSubscribe copies the current elements and registers fn in one
// critical section. It is Attach with a plain copy as the init step.
func (l *List[T]) SnapshotAndSubscribe(fn Observer[T]) ([]T, *Subscription) {
	var out []T
	sub := l.Attach(func(items []T) {
		out = make([]T, len(items))
		copy(out, items)
	}, fn)
	return out, sub
}

func (l *List[T]) subscribeLocked(fn Observer[T]) *Subscription {
	id := l.nextID
	l.nextID++
	l.observers[id] = fn
	return &Subscription{cancel: func() { l.unsubscribe(id) }}
}

func (l *List[T]) unsubscribe(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.observers, id)
}

// ObserverCount returns the number of registered observers.
func (l *List[T]) ObserverCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.observers)
}

// Append adds items to the end of the list. Appending more than one item
// produces a single batched Add change; appending none is a no-op.
func (l *List[T]) Append(items ...T) {
	if len(items) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	index := len(l.items)
	l.items = append(l.items, items...)
	added := make([]T, len(items))
	copy(added, items)
	l.notifyLocked(Change[T]{
		Action:  ActionAdd,
		Index:   index,
		Items:   added,
		Batched: len(items) > 1,
	})
}

// Insert places v at index i. i may equal Len(), making Insert an append.
func (l *List[T]) Insert(i int, v T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i > len(l.items) {
		return ErrIndexOutOfRange
	}
	l.items = append(l.items, v)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = v
	l.notifyLocked(Change[T]{
		Action: ActionAdd,
		Index:  i,
		Items:  []T{v},
	})
	return nil
}

// RemoveAt removes the element at index i.
func (l *List[T]) RemoveAt(i int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return ErrIndexOutOfRange
	}
	removed := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.notifyLocked(Change[T]{
		Action: ActionRemove,
		Index:  i,
		Items:  []T{removed},
	})
	return nil
}

// RemoveRange removes n consecutive elements starting at start, producing a
// single batched Remove change.
func (l *List[T]) RemoveRange(start, n int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if start < 0 || n < 0 || start+n > len(l.items) {
		return ErrRangeInvalid
	}
	if n == 0 {
		return nil
	}
	removed := make([]T, n)
	copy(removed, l.items[start:start+n])
	l.items = append(l.items[:start], l.items[start+n:]...)
	l.notifyLocked(Change[T]{
		Action:  ActionRemove,
		Index:   start,
		Items:   removed,
		Batched: true,
	})
	return nil
}

// Replace overwrites the element at index i with v.
func (l *List[T]) Replace(i int, v T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return ErrIndexOutOfRange
	}
	old := l.items[i]
	l.items[i] = v
	l.notifyLocked(Change[T]{
		Action:  ActionReplace,
		Index:   i,
		OldItem: old,
		NewItem: v,
	})
	return nil
}

// Move repositions the element at oldIndex to newIndex. The new index is
// interpreted after the element has been taken out, matching the
// remove-then-insert sequence observers will mirror.
func (l *List[T]) Move(oldIndex, newIndex int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if oldIndex < 0 || oldIndex >= len(l.items) || newIndex < 0 || newIndex >= len(l.items) {
		return ErrIndexOutOfRange
	}
	if oldIndex == newIndex {
		return nil
	}
	moved := l.items[oldIndex]
	l.items = append(l.items[:oldIndex], l.items[oldIndex+1:]...)
	l.items = append(l.items, moved)
	copy(l.items[newIndex+1:], l.items[newIndex:len(l.items)-1])
	l.items[newIndex] = moved
	l.notifyLocked(Change[T]{
		Action:   ActionMove,
		Index:    newIndex,
		OldIndex: oldIndex,
		Items:    []T{moved},
	})
	return nil
}

// Clear removes every element, producing a single Reset change.
func (l *List[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = l.items[:0]
	l.notifyLocked(Change[T]{Action: ActionReset})
}

// notifyLocked delivers c to every observer. Callers must hold l.mu.
func (l *List[T]) notifyLocked(c Change[T]) {
	for _, fn := range l.observers {
		fn(c)
	}
}
