// Package syncview maintains a synchronized, filtered, projected view over
// an observable ordered list. The view owns a private mirror of (value,
// projection) pairs that is updated incrementally from the list's change
// stream; the source is never re-scanned after construction.
//
// A view is created over an obslist.List together with a transform that
// derives a projection from each element. The projection is computed once
// when the element is first observed and never recomputed, even if the
// transform would produce a different result later.
//
// # Locking
//
// Two locks are involved: the source list's lock and the view's own lock,
// always acquired in that order. The list invokes the view's translation
// handler while holding its own lock, and the handler then takes the view
// lock, so a reader never observes a mirror that is partially updated for a
// change. The inverse order is forbidden: code holding a view lock must not
// call into the source list. Observer callbacks registered through OnChange
// and OnStateChanged run under both locks and must not call back into the
// view or the list; post work to a channel instead.
//
// # Add interpretation
//
// The change stream reports insertions with a single starting index, which
// cannot distinguish "prepend" from "append" in every case. An Add at index
// 0 into a non-empty mirror is treated as a prepend; every other Add is
// treated as an append. An insert at index 0 of an empty mirror is
// indistinguishable from an append and yields the same order either way.
// This is a deliberate property of the legacy event shape: sources must
// mutate at the ends (or via Replace, Move, Reset) for the mirror to stay
// aligned.
package syncview
