// Package obslist provides an observable ordered list. Every mutation is
// described by exactly one Change event delivered synchronously to all
// subscribed observers while the list's own lock is still held, so an
// observer always sees changes in mutation order with no interleaving.
//
// Because observers run inside the list lock, an observer may acquire its
// own locks (lists feeding views rely on this, see the syncview package)
// but must never call back into the list that is notifying it, and must
// never acquire a lock that other goroutines hold while calling list
// methods. The safe ordering is always list lock first, observer-owned
// locks second.
//
// Observers are expected to be fast and non-blocking: the mutating
// goroutine pays for every observer invocation.
package obslist
