// Package ksync provides the blocking primitives the kernel's data
// planes sleep on.
//
// Unlike sync.Cond, the condition variable here supports cancellable
// sleeps: a waiter parks on a channel and is released either by a
// broadcast or by its context, so interruption and deadlines surface as
// status errors instead of stuck goroutines.
package ksync

import (
	"context"
	"sync"

	"github.com/GriffinCanCode/AgentOS/kernel/internal/kstatus"
)

// Cond is a condition variable bound to a mutex.
//
// All methods except Wait's sleep itself must be called with the mutex
// held. Wakeups are edge-triggered and may be spurious; callers re-check
// their predicate in a loop.
type Cond struct {
	mu      *sync.Mutex
	waiters map[chan struct{}]struct{}
}

// NewCond creates a condition variable bound to mu.
func NewCond(mu *sync.Mutex) *Cond {
	return &Cond{
		mu:      mu,
		waiters: make(map[chan struct{}]struct{}),
	}
}

// Wait atomically releases the mutex and suspends the caller until a
// broadcast or until ctx is done. The mutex is re-acquired before Wait
// returns, whatever the outcome.
//
// Returns nil on wakeup, kstatus.ErrTimedOut when the context deadline
// expired, and kstatus.ErrInterrupted when the context was cancelled.
func (c *Cond) Wait(ctx context.Context) error {
	ch := make(chan struct{})
	c.waiters[ch] = struct{}{}
	c.mu.Unlock()

	var err error
	select {
	case <-ch:
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			err = kstatus.ErrTimedOut
		} else {
			err = kstatus.ErrInterrupted
		}
	}

	c.mu.Lock()
	delete(c.waiters, ch)
	return err
}

// Broadcast releases every current waiter. Must be called with the
// mutex held.
func (c *Cond) Broadcast() {
	for ch := range c.waiters {
		close(ch)
		delete(c.waiters, ch)
	}
}

// Waiting reports the number of parked waiters. Must be called with the
// mutex held.
func (c *Cond) Waiting() int {
	return len(c.waiters)
}
