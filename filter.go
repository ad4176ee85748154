package syncview

// Filter is a pluggable policy attached to a view. The view drives the four
// lifecycle hooks as it translates source changes into mirror updates, and
// consults Visible while enumerating. Hooks run under the view lock (and
// the source lock above it) and must be fast and non-blocking.
//
// A view always has a filter in effect; NullFilter stands in when none has
// been attached.
type Filter[T, V any] interface {
	// OnAttach is invoked once per existing entry, in mirror order, when
	// the filter is attached to a view.
	OnAttach(value T, projection V)

	// OnAdd is invoked after an entry is inserted into the mirror.
	OnAdd(value T, projection V)

	// OnRemove is invoked for an entry leaving the mirror. For batch
	// removal it fires before the entries are removed, while they still sit
	// at their original positions.
	OnRemove(value T, projection V)

	// OnMove is invoked once after an entry has been repositioned.
	OnMove(value T, projection V)

	// Visible reports whether an entry should be produced by enumeration.
	Visible(value T, projection V) bool

	// IsNull reports whether this is the no-op filter. The view skips the
	// per-entry OnRemove pass on reset when it is; calling the hooks anyway
	// would be harmless, just wasted work.
	IsNull() bool
}

// NullFilter is the no-op filter: every entry is visible and every hook does
// nothing.
type NullFilter[T, V any] struct{}

func (NullFilter[T, V]) OnAttach(T, V) {}
func (NullFilter[T, V]) OnAdd(T, V)    {}
func (NullFilter[T, V]) OnRemove(T, V) {}
func (NullFilter[T, V]) OnMove(T, V)   {}

// Visible always reports true.
func (NullFilter[T, V]) Visible(T, V) bool { return true }

// IsNull reports true.
func (NullFilter[T, V]) IsNull() bool { return true }

// FuncFilter adapts plain functions into a Filter. Nil fields are no-ops; a
// nil Show makes every entry visible. A FuncFilter is never the null filter,
// even with all fields nil.
type FuncFilter[T, V any] struct {
	Attach func(value T, projection V)
	Add    func(value T, projection V)
	Remove func(value T, projection V)
	Move   func(value T, projection V)
	Show   func(value T, projection V) bool
}

func (f *FuncFilter[T, V]) OnAttach(value T, projection V) {
	if f.Attach != nil {
		f.Attach(value, projection)
	}
}

func (f *FuncFilter[T, V]) OnAdd(value T, projection V) {
	if f.Add != nil {
		f.Add(value, projection)
	}
}

func (f *FuncFilter[T, V]) OnRemove(value T, projection V) {
	if f.Remove != nil {
		f.Remove(value, projection)
	}
}

func (f *FuncFilter[T, V]) OnMove(value T, projection V) {
	if f.Move != nil {
		f.Move(value, projection)
	}
}

// Visible consults Show, defaulting to true.
func (f *FuncFilter[T, V]) Visible(value T, projection V) bool {
	if f.Show != nil {
		return f.Show(value, projection)
	}
	return true
}

// IsNull reports false.
func (f *FuncFilter[T, V]) IsNull() bool { return false }
