// Package notify provides the ordered, append-only callback list used for
// element lifecycle phases.
package notify

// Notifier is an ordered list of zero-argument subscribers.
//
// Subscribers cannot be removed; notifiers live exactly as long as the
// element instance that owns them. A nil *Notifier is valid and notifies
// nobody, which lets owners allocate lazily on first Subscribe.
//
// Notifier is NOT thread-safe. It must only be used from the goroutine that
// drives the owning element.
type Notifier struct {
	subscribers []func()
}

// New creates an empty notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe appends fn. The same function may be subscribed more than once
// and is then called once per subscription.
func (n *Notifier) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	n.subscribers = append(n.subscribers, fn)
}

// Notify calls every subscriber in subscription order. A panicking
// subscriber aborts the remaining subscribers for this call.
func (n *Notifier) Notify() {
	if n == nil {
		return
	}
	for _, fn := range n.subscribers {
		fn()
	}
}

// Len returns the number of subscriptions.
func (n *Notifier) Len() int {
	if n == nil {
		return 0
	}
	return len(n.subscribers)
}
