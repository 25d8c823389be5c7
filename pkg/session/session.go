package session

import (
	"errors"
	"fmt"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/identity"
)

// ErrInvalidIdentityFormat indicates the on-behalf-of identity is not a UUID.
var ErrInvalidIdentityFormat = errors.New("invalid on-behalf-of identity")

// ErrReentrantScope indicates a scope was entered while another was active.
var ErrReentrantScope = errors.New("Can't nest on-behalf-of calls")

// errAborted is reported to observers when the work panics.
var errAborted = errors.New("on-behalf-of work did not return")

// Observer is notified of scope transitions. It cannot alter them: a panic
// raised by an observer is discarded.
type Observer interface {
	ScopeEntered(id string)
	ScopeExited(id string, err error)
	ScopeRejected(id string, err error)
}

// Option configures a Session.
type Option func(*Session)

// WithObserver registers an observer for scope transitions.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observer = o
	}
}

// Session holds at most one on-behalf-of override.
// The zero value is an idle Session without an observer.
type Session struct {
	onBehalfOf string
	observer   Observer
}

// New creates an idle Session.
func New(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnBehalfOf returns the current override, or "" when idle.
func (s *Session) OnBehalfOf() string {
	return s.onBehalfOf
}

// Active reports whether a scope is active.
func (s *Session) Active() bool {
	return s.onBehalfOf != ""
}

// Clear releases the override. Clearing an idle Session is a no-op.
func (s *Session) Clear() {
	s.onBehalfOf = ""
}

func (s *Session) set(id string) {
	s.onBehalfOf = id
}

// Do runs work on behalf of id.
//
// id must be a canonical UUID and no other scope may be active on s; both are
// checked before the override is set. The override is cleared when work
// returns or panics, and the error returned by work is passed through as is.
func (s *Session) Do(id string, work func() error) error {
	_, err := Within(s, id, func() (struct{}, error) {
		return struct{}{}, work()
	})
	return err
}

// Within is Do for work that produces a result.
func Within[T any](s *Session, id string, work func() (T, error)) (T, error) {
	var zero T

	if err := s.claim(id); err != nil {
		s.notifyRejected(id, err)
		return zero, err
	}

	// registered first so the slot is released after the observer has run
	defer s.Clear()

	returned := false
	var workErr error
	defer func() {
		if returned {
			s.notifyExited(id, workErr)
		} else {
			s.notifyExited(id, errAborted)
		}
	}()

	s.notifyEntered(id)
	result, workErr := work()
	returned = true
	return result, workErr
}

// claim validates id and moves s from idle to active.
func (s *Session) claim(id string) error {
	if err := identity.Validate(id); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIdentityFormat, err)
	}
	if s.Active() {
		return fmt.Errorf("%w: already acting on behalf of %s", ErrReentrantScope, s.onBehalfOf)
	}
	s.set(id)
	return nil
}

func (s *Session) notifyEntered(id string) {
	if s.observer != nil {
		defer ignorePanic()
		s.observer.ScopeEntered(id)
	}
}

func (s *Session) notifyExited(id string, err error) {
	if s.observer != nil {
		defer ignorePanic()
		s.observer.ScopeExited(id, err)
	}
}

func (s *Session) notifyRejected(id string, err error) {
	if s.observer != nil {
		defer ignorePanic()
		s.observer.ScopeRejected(id, err)
	}
}

func ignorePanic() {
	_ = recover()
}
