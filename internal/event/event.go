// Package event provides the edge-triggered notification fabric external
// waiters subscribe through.
//
// Key Components:
//   - Notifier: an observer list run by the object that owns the state
//   - Entry: a subscriber-owned registration in one notifier
//   - Event: a one-shot signalable object carrying an event code
//
// Notifiers may fire spuriously; consumers re-evaluate their readiness
// predicate after every wakeup.
package event

import "sync/atomic"

// Event is a one-shot notification target. It wraps a notifier entry so
// it can be attached to an object's notifier list, and exposes a channel
// for waiters.
type Event struct {
	// Kind is the object-defined event code, for example a file layer's
	// readable or hang-up codes.
	Kind uint32

	entry    *Entry
	signaled atomic.Bool
	done     chan struct{}
}

// NewEvent creates an unsignaled event with the given code.
func NewEvent(kind uint32) *Event {
	e := &Event{
		Kind: kind,
		done: make(chan struct{}),
	}
	e.entry = NewEntry(e.Signal)
	return e
}

// Entry returns the notifier registration backing this event.
func (e *Event) Entry() *Entry {
	return e.entry
}

// Signal marks the event as fired. Signalling more than once is
// harmless; only the first transition closes the done channel.
func (e *Event) Signal() {
	if e.signaled.CompareAndSwap(false, true) {
		close(e.done)
	}
}

// Signaled reports whether the event has fired.
func (e *Event) Signaled() bool {
	return e.signaled.Load()
}

// Done returns a channel closed when the event fires.
func (e *Event) Done() <-chan struct{} {
	return e.done
}
