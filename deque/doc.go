// Package deque provides a generic double-ended queue backed by a ring
// buffer. It is the storage primitive for view mirrors: O(1) amortized
// push/pop at both ends, O(1) indexed access and replacement, O(n) insertion
// and removal in the middle.
//
// A Deque is not safe for concurrent use. Callers that share a Deque across
// goroutines must provide their own synchronization; in this module the view
// layer owns that lock.
//
// Index arguments follow slice semantics: an index outside the valid range
// panics rather than returning an error, because an out-of-range index is a
// programming error, not a recoverable condition.
package deque
