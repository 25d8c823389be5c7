// Package session holds the on-behalf-of override of a Currency Cloud client
// and the guard that scopes it.
//
// A Session is owned by exactly one client. It is either idle (no override)
// or active (acting on behalf of one identity). The only way into the active
// state is Do (or Within), which validates the identity, claims the slot, runs
// the caller's work and releases the slot on every exit path:
//
//	err := s.Do("c6ece846-6df1-461d-acaa-b42a6aa74045", func() error {
//		// s.OnBehalfOf() == "c6ece846-6df1-461d-acaa-b42a6aa74045"
//		return nil
//	})
//	// s.OnBehalfOf() == ""
//
// Scopes do not nest. Calling Do while a scope is active fails with
// ErrReentrantScope and leaves the outer scope untouched.
//
// # Concurrency
//
// A Session serves one logical call chain. Concurrent Do calls on the same
// Session from different goroutines are not supported; use one client per
// goroutine or serialize access externally. Do blocks until the work
// returns and imposes no timeout: if the work never returns, the slot is
// never released.
package session
