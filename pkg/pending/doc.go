// Package pending implements resolve-once caller requests.
//
// A Request is the caller's handle on an asynchronous command: it settles
// exactly once, with a value or an error, and can be observed by waiting on
// it, by polling it, or through a completion callback. Settling an already
// settled request is a reported no-op, never a panic.
//
// A Slot holds at most one outstanding Request of a given Class. Putting a
// new request into an occupied slot fails the previous one with
// ErrSuperseded before the new one takes its place, so a pre-empted caller
// is never left unsettled.
package pending
