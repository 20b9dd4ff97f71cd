// Package eventhub fans engine and capability events out to observers.
//
// The hub has four independent channels: ranging results, monitoring
// transitions, radio power changes and authorization status changes. Each
// channel has at most one subscriber. Subscribing while another subscriber
// is active replaces it; cancelling a subscription clears the slot only if
// that subscription is still the active one. Pushing to a channel without a
// subscriber is a silent no-op.
//
// Subscribe and Cancel may be called from any goroutine, concurrently with
// a push, and from inside a handler. Deliveries on one channel are
// ordered. A delivery already in flight when its subscriber is replaced
// runs to completion; later pushes go to the replacement only. Handlers
// must not push to their own channel.
package eventhub
