package client

import (
	"sync"
	"sync/atomic"
)

// CancelToken is a shareable, monotone cancellation flag. One token is
// created per built client; every clone of a [RequestClient] references
// the same instance, so cancelling through any clone is observed by all
// of them.
//
// A token starts live and can only move to cancelled; it never returns to
// live. Concurrent Cancel and observation calls are race-free.
type CancelToken struct {
	once      sync.Once
	cancelled atomic.Bool
	done      chan struct{}
}

// NewCancelToken returns a live token.
func NewCancelToken() *CancelToken {
	return &CancelToken{done: make(chan struct{})}
}

// Cancel moves the token to cancelled. Cancelling an already-cancelled
// token is a no-op.
func (t *CancelToken) Cancel() {
	t.once.Do(func() {
		t.cancelled.Store(true)
		close(t.done)
	})
}

// Cancelled reports whether the token has been cancelled.
func (t *CancelToken) Cancelled() bool {
	return t.cancelled.Load()
}

// Done returns a channel that is closed once the token is cancelled,
// for operations that want to abandon work promptly instead of polling.
func (t *CancelToken) Done() <-chan struct{} {
	return t.done
}
