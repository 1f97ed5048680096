// Package events provides a small typed publish/subscribe bus.
// Handlers run synchronously in subscription order; a panicking handler is
// recovered and reported without stopping delivery to the rest.
package events

import (
	"fmt"
	"sync"
)

// Handler receives published values of type T.
type Handler[T any] func(T)

// FailureFunc is called when a handler panics during Publish.
type FailureFunc func(err error)

// Subscription is the handle returned by Subscribe.
// Cancel removes the handler; it is safe to call more than once.
type Subscription struct {
	cancel func()
	once   sync.Once
}

// Cancel unsubscribes the handler.
func (s *Subscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}

type entry[T any] struct {
	id uint64
	fn Handler[T]
}

// Bus is a registry of handlers for one event type.
type Bus[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	handlers  []entry[T]
	onFailure FailureFunc
}

// NewBus creates an empty bus. onFailure may be nil.
func NewBus[T any](onFailure FailureFunc) *Bus[T] {
	return &Bus[T]{onFailure: onFailure}
}

// Subscribe registers fn and returns its handle.
func (b *Bus[T]) Subscribe(fn Handler[T]) *Subscription {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, entry[T]{id: id, fn: fn})
	b.mu.Unlock()

	return &Subscription{cancel: func() { b.remove(id) }}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.handlers {
		if e.id == id {
			b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
			return
		}
	}
}

// Len returns the number of active handlers.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

// Publish delivers v to every handler registered at the time of the call.
func (b *Bus[T]) Publish(v T) {
	b.mu.Lock()
	snapshot := make([]entry[T], len(b.handlers))
	copy(snapshot, b.handlers)
	b.mu.Unlock()

	for _, e := range snapshot {
		b.deliver(e, v)
	}
}

func (b *Bus[T]) deliver(e entry[T], v T) {
	defer func() {
		if r := recover(); r != nil && b.onFailure != nil {
			b.onFailure(fmt.Errorf("events: handler %d panicked: %v", e.id, r))
		}
	}()
	e.fn(v)
}
