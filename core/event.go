package core

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Listener receives the arguments of an Event it is attached to.
type Listener[T any] interface {
	Handle(arg T) error
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc[T any] func(arg T) error

func (f ListenerFunc[T]) Handle(arg T) error { return f(arg) }

type subscription[T any] struct {
	l Listener[T]
}

// Event is an ordered list of listeners. Listeners are notified in the order
// they were attached. Attaching or detaching while notifying takes effect on
// the next notification.
type Event[T any] struct {
	mu   sync.RWMutex
	subs []*subscription[T]
}

// Attach appends a listener and returns a function that removes it again.
// Calling the returned function more than once is a no-op.
func (e *Event[T]) Attach(l Listener[T]) (detach func()) {
	s := &subscription[T]{l}

	e.mu.Lock()
	e.subs = append(e.subs, s)
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { e.remove(s) })
	}
}

func (e *Event[T]) remove(s *subscription[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, f := range e.subs {
		if f == s {
			l := len(e.subs)
			copy(e.subs[i:], e.subs[i+1:])
			e.subs[l-1] = nil
			e.subs = e.subs[:l-1]
			return
		}
	}
}

// Len returns the number of attached listeners.
func (e *Event[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs)
}

func (e *Event[T]) snapshot() []*subscription[T] {
	e.mu.RLock()
	defer e.mu.RUnlock()

	subs := make([]*subscription[T], len(e.subs))
	copy(subs, e.subs)
	return subs
}

// Notify calls every listener in order and stops at the first error.
func (e *Event[T]) Notify(arg T) error {
	for _, s := range e.snapshot() {
		if err := s.l.Handle(arg); err != nil {
			return err
		}
	}
	return nil
}

// NotifyAll calls every listener regardless of failures and returns the
// collected errors.
func (e *Event[T]) NotifyAll(arg T) error {
	var errs *multierror.Error
	for _, s := range e.snapshot() {
		if err := s.l.Handle(arg); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}
