package deque

import (
	"fmt"
	"iter"
)

// minCapacity is the smallest backing array allocated once the deque holds
// any elements. Capacities are always powers of two so ring indexes can be
// computed with a mask instead of a modulo.
const minCapacity = 8

// Deque is a double-ended queue of T backed by a ring buffer.
// The zero value is an empty deque ready for use.
type Deque[T any] struct {
	buf  []T
	head int
	size int
}

// New creates an empty deque.
func New[T any]() *Deque[T] {
	return &Deque[T]{}
}

// FromSlice creates a deque holding a copy of items in order.
func FromSlice[T any](items []T) *Deque[T] {
	d := &Deque[T]{}
	d.ensure(len(items))
	copy(d.buf, items)
	d.size = len(items)
	return d
}

// Len returns the number of elements currently held.
func (d *Deque[T]) Len() int {
	return d.size
}

// At returns the element at index i. It panics if i is out of range.
func (d *Deque[T]) At(i int) T {
	d.checkIndex(i)
	return d.buf[d.ring(i)]
}

// Set replaces the element at index i. It panics if i is out of range.
func (d *Deque[T]) Set(i int, v T) {
	d.checkIndex(i)
	d.buf[d.ring(i)] = v
}

// PushFront prepends v. Amortized O(1).
func (d *Deque[T]) PushFront(v T) {
	d.ensure(d.size + 1)
	d.head = d.wrap(d.head - 1)
	d.buf[d.head] = v
	d.size++
}

// PushBack appends v. Amortized O(1).
func (d *Deque[T]) PushBack(v T) {
	d.ensure(d.size + 1)
	d.buf[d.ring(d.size)] = v
	d.size++
}

// PopFront removes and returns the first element. It panics on an empty deque.
func (d *Deque[T]) PopFront() T {
	if d.size == 0 {
		panic("deque: PopFront on empty deque")
	}
	v := d.buf[d.head]
	var zero T
	d.buf[d.head] = zero
	d.head = d.wrap(d.head + 1)
	d.size--
	return v
}

// PopBack removes and returns the last element. It panics on an empty deque.
func (d *Deque[T]) PopBack() T {
	if d.size == 0 {
		panic("deque: PopBack on empty deque")
	}
	i := d.ring(d.size - 1)
	v := d.buf[i]
	var zero T
	d.buf[i] = zero
	d.size--
	return v
}

// Insert places v at index i, shifting later elements right.
// i may equal Len(), in which case Insert is equivalent to PushBack.
// O(1) at either end, O(n) in the middle.
func (d *Deque[T]) Insert(i int, v T) {
	if i < 0 || i > d.size {
		panic(fmt.Sprintf("deque: insert index %d out of range [0,%d]", i, d.size))
	}
	switch i {
	case 0:
		d.PushFront(v)
	case d.size:
		d.PushBack(v)
	default:
		d.ensure(d.size + 1)
		for j := d.size; j > i; j-- {
			d.buf[d.ring(j)] = d.buf[d.ring(j-1)]
		}
		d.buf[d.ring(i)] = v
		d.size++
	}
}

// RemoveAt removes and returns the element at index i, shifting later
// elements left. It panics if i is out of range.
// O(1) at either end, O(n) in the middle.
func (d *Deque[T]) RemoveAt(i int) T {
	d.checkIndex(i)
	switch i {
	case 0:
		return d.PopFront()
	case d.size - 1:
		return d.PopBack()
	}
	v := d.buf[d.ring(i)]
	for j := i; j < d.size-1; j++ {
		d.buf[d.ring(j)] = d.buf[d.ring(j+1)]
	}
	var zero T
	d.buf[d.ring(d.size-1)] = zero
	d.size--
	return v
}

// RemoveRange removes n consecutive elements starting at start.
// It panics if the range does not lie within [0, Len()].
func (d *Deque[T]) RemoveRange(start, n int) {
	if start < 0 || n < 0 || start+n > d.size {
		panic(fmt.Sprintf("deque: remove range [%d,%d) out of range [0,%d)", start, start+n, d.size))
	}
	if n == 0 {
		return
	}
	for j := start; j+n < d.size; j++ {
		d.buf[d.ring(j)] = d.buf[d.ring(j+n)]
	}
	var zero T
	for j := d.size - n; j < d.size; j++ {
		d.buf[d.ring(j)] = zero
	}
	d.size -= n
}

// Clear removes every element, keeping the allocated capacity.
func (d *Deque[T]) Clear() {
	var zero T
	for i := 0; i < d.size; i++ {
		d.buf[d.ring(i)] = zero
	}
	d.head = 0
	d.size = 0
}

// All returns a forward iterator over the elements. The sequence is lazy and
// restartable; mutating the deque during an active traversal is undefined.
func (d *Deque[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < d.size; i++ {
			if !yield(d.buf[d.ring(i)]) {
				return
			}
		}
	}
}

// Backward returns a reverse iterator over the elements, with the same
// laziness and mutation caveats as All.
func (d *Deque[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := d.size - 1; i >= 0; i-- {
			if !yield(d.buf[d.ring(i)]) {
				return
			}
		}
	}
}

// ring maps a logical index to a position in the backing array.
func (d *Deque[T]) ring(i int) int {
	return (d.head + i) & (len(d.buf) - 1)
}

// wrap normalizes a raw buffer position onto the ring.
func (d *Deque[T]) wrap(i int) int {
	return i & (len(d.buf) - 1)
}

func (d *Deque[T]) checkIndex(i int) {
	if i < 0 || i >= d.size {
		panic(fmt.Sprintf("deque: index %d out of range [0,%d)", i, d.size))
	}
}

// ensure grows the backing array so it can hold at least n elements.
// Capacity doubles, so pushes stay amortized O(1).
func (d *Deque[T]) ensure(n int) {
	if n <= len(d.buf) {
		return
	}
	capacity := len(d.buf)
	if capacity == 0 {
		capacity = minCapacity
	}
	for capacity < n {
		capacity *= 2
	}
	buf := make([]T, capacity)
	for i := 0; i < d.size; i++ {
		buf[i] = d.buf[d.ring(i)]
	}
	d.buf = buf
	d.head = 0
}
