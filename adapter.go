package syncview

import (
	"sync/atomic"

	"github.com/dshills/syncview/obslist"
)

// LegacyHandler receives the item-level diff protocol used by older binding
// frameworks: one callback per affected item, plus a coarse reset. Callbacks
// run inside the view lock (and the source lock above it) and must not call
// back into the view or the source.
type LegacyHandler[T any] interface {
	// ItemInserted reports an item that appeared at index.
	ItemInserted(index int, item T)

	// ItemRemoved reports an item that left the collection. Contiguous
	// batch removals are reported one item at a time, all at the starting
	// index, in original order: each call describes the collection after
	// the previous removal already took effect.
	ItemRemoved(index int, item T)

	// ItemReplaced reports an in-place overwrite.
	ItemReplaced(index int, oldItem, newItem T)

	// ItemMoved reports a repositioned item.
	ItemMoved(oldIndex, newIndex int, item T)

	// Reset reports that the collection was cleared; consumers rebind.
	Reset()
}

// Adapter bridges a view's change stream onto a LegacyHandler. It is a pure
// downstream consumer: it never touches the mirror, it only translates
// notifications.
type Adapter[T, V any] struct {
	handler LegacyHandler[T]
	sub     *Subscription
	closed  atomic.Bool
}

// NewAdapter attaches handler to view. Changes that happened before the
// adapter was created are not replayed.
func NewAdapter[T, V any](view *View[T, V], handler LegacyHandler[T]) *Adapter[T, V] {
	a := &Adapter[T, V]{handler: handler}
	a.sub = view.OnChange(a.forward)
	return a
}

// Close detaches the adapter from its view. Idempotent.
func (a *Adapter[T, V]) Close() {
	if a.closed.Swap(true) {
		return
	}
	a.sub.Unsubscribe()
}

func (a *Adapter[T, V]) forward(c obslist.Change[T]) {
	switch c.Action {
	case obslist.ActionAdd:
		for i, item := range c.Items {
			a.handler.ItemInserted(c.Index+i, item)
		}
	case obslist.ActionRemove:
		for _, item := range c.Items {
			a.handler.ItemRemoved(c.Index, item)
		}
	case obslist.ActionReplace:
		a.handler.ItemReplaced(c.Index, c.OldItem, c.NewItem)
	case obslist.ActionMove:
		a.handler.ItemMoved(c.OldIndex, c.Index, c.Item())
	case obslist.ActionReset:
		a.handler.Reset()
	}
}
