package eventhub

import (
	"sync"
	"sync/atomic"
)

// Handler receives events from a channel.
type Handler[T any] func(T)

// Channel is a single-subscriber event channel.
type Channel[T any] struct {
	name string

	// pushMu orders deliveries. It is held while a handler runs, so it
	// must never be taken by Subscribe, Unsubscribe or release.
	pushMu sync.Mutex

	mu      sync.Mutex
	active  *Subscription
	handler Handler[T]

	onChange func(name string, subscribed bool)
}

var nextSubscriptionID atomic.Uint64

// Subscription identifies one subscriber of a channel.
type Subscription struct {
	id     uint64
	cancel func(*Subscription)

	mu       sync.Mutex
	canceled bool
	onCancel []func()
}

// ID returns the subscription identifier.
func (s *Subscription) ID() uint64 { return s.id }

// Cancel unsubscribes. It is safe to call more than once and after the
// subscription has been replaced.
func (s *Subscription) Cancel() {
	s.mu.Lock()
	if s.canceled {
		s.mu.Unlock()
		return
	}
	s.canceled = true
	hooks := s.onCancel
	s.onCancel = nil
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel(s)
	}
	for _, fn := range hooks {
		fn()
	}
}

// OnCancel registers fn to run when the subscription is cancelled or
// replaced by a newer subscriber.
func (s *Subscription) OnCancel(fn func()) {
	s.mu.Lock()
	if s.canceled {
		s.mu.Unlock()
		fn()
		return
	}
	s.onCancel = append(s.onCancel, fn)
	s.mu.Unlock()
}

// Canceled reports whether the subscription has ended.
func (s *Subscription) Canceled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canceled
}

// NewChannel creates a channel with a diagnostic name.
func NewChannel[T any](name string) *Channel[T] {
	return &Channel[T]{name: name}
}

// Name returns the channel name.
func (c *Channel[T]) Name() string { return c.name }

// Subscribe installs h as the only subscriber and returns its subscription.
// A previous subscriber is replaced and its subscription ends.
func (c *Channel[T]) Subscribe(h Handler[T]) *Subscription {
	sub := &Subscription{id: nextSubscriptionID.Add(1)}
	sub.cancel = c.release

	c.mu.Lock()
	prev := c.active
	c.active = sub
	c.handler = h
	onChange := c.onChange
	c.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	if onChange != nil {
		onChange(c.name, true)
	}
	return sub
}

// Unsubscribe clears the channel regardless of which subscriber is active.
func (c *Channel[T]) Unsubscribe() {
	c.mu.Lock()
	prev := c.active
	c.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
}

// release clears the slot if sub is still the active subscriber.
func (c *Channel[T]) release(sub *Subscription) {
	c.mu.Lock()
	if c.active != sub {
		c.mu.Unlock()
		return
	}
	c.active = nil
	c.handler = nil
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(c.name, false)
	}
}

// Push delivers ev to the current subscriber. It reports whether a
// subscriber received the event.
//
// The handler runs without the subscriber lock held, so it may cancel its
// own subscription, subscribe again or push to another channel. A
// subscriber replaced while a delivery is in flight sees that delivery
// finish and nothing after it.
func (c *Channel[T]) Push(ev T) bool {
	c.pushMu.Lock()
	defer c.pushMu.Unlock()

	c.mu.Lock()
	sub, h := c.active, c.handler
	c.mu.Unlock()

	if h == nil || sub.Canceled() {
		return false
	}
	h(ev)
	return true
}

// Subscribed reports whether the channel has an active subscriber.
func (c *Channel[T]) Subscribed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}
