// Package viewmodel holds the per-screen state and actions of the client
// flows, independent of any rendering layer.
package viewmodel

import "sync"

// Observable is the read side of a Signal.
type Observable[T any] interface {
	Get() T
	Subscribe(fn func(T)) (unsubscribe func())
}

// Signal holds a value and notifies subscribers on every Set. Subscribers
// run synchronously on the setting goroutine, in subscription order.
//
// Only the owning view-model writes a Signal; everyone else receives it as an
// Observable.
type Signal[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores v and notifies the subscribers.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := make([]subscription[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Update replaces the value with fn applied to it.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	subs := make([]subscription[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Subscribe registers fn for future values. The returned func removes it and
// may be called more than once.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription[T]{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
