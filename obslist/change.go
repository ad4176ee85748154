package obslist

// Action identifies the kind of mutation a Change describes.
type Action int

const (
	// ActionAdd indicates items were inserted.
	ActionAdd Action = iota

	// ActionRemove indicates items were removed.
	ActionRemove

	// ActionReplace indicates a single item was overwritten in place.
	ActionReplace

	// ActionMove indicates a single item changed position.
	ActionMove

	// ActionReset indicates the list was cleared.
	ActionReset
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReplace:
		return "replace"
	case ActionMove:
		return "move"
	case ActionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes exactly one list mutation. Which fields are meaningful
// depends on Action:
//
//   - ActionAdd: Index is the position of the first inserted item, Items
//     holds the inserted items in order, Batched is true when more than one
//     item was inserted in a single mutation. Batched adds are only ever
//     produced for back-inserts (Append).
//   - ActionRemove: Index is the position of the first removed item, Items
//     holds the removed items in their original order, Batched is true for
//     range removal.
//   - ActionReplace: Index is the overwritten position; OldItem and NewItem
//     carry the values. Replace is always single-item.
//   - ActionMove: OldIndex is the original position, Index the new one, and
//     Items holds the single moved item.
//   - ActionReset: no positional fields are meaningful.
//
// Changes are consumed synchronously during notification; observers must
// not retain the Items slice past the callback.
type Change[T any] struct {
	Action   Action
	Index    int
	OldIndex int
	Items    []T
	Batched  bool
	OldItem  T
	NewItem  T
}

// Item returns the single item carried by a non-batched Add, Remove, or
// Move change.
func (c Change[T]) Item() T {
	return c.Items[0]
}
