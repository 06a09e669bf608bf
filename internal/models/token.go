package models

import "sync"

// CancellationToken is a cooperative stop flag shared between the UI
// goroutine and a background worker. Once cancelled it stays cancelled.
type CancellationToken struct {
	cancelled bool
	mu        sync.Mutex
}

// NewCancellationToken creates a live token.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{}
}

// Cancel marks the token as cancelled.
func (ct *CancellationToken) Cancel() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.cancelled = true
}

// IsCancelled returns true if the token has been cancelled.
func (ct *CancellationToken) IsCancelled() bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.cancelled
}

// Guard runs fn while holding the token lock, unless the token is already
// cancelled. It reports whether fn ran. Cancel blocks until a running fn
// returns, so nothing guarded happens after Cancel returns.
func (ct *CancellationToken) Guard(fn func()) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	if ct.cancelled {
		return false
	}
	fn()
	return true
}
