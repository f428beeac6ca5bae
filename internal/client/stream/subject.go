// Package stream provides small observable values with disposable
// subscriptions. It replaces ad-hoc listener lists across the client.
package stream

import "sync"

// Subject holds a current value and notifies subscribers on every change.
//
// Delivery is synchronous and serialized: subscribers see values in
// publish order and never concurrently. A callback must not publish to or
// subscribe on the subject that is calling it.
type Subject[T any] struct {
	equal func(a, b T) bool

	deliver sync.Mutex // deliver сериализует доставку значений

	mu     sync.Mutex
	value  T
	subs   []subscriber[T]
	next   uint64
	closed bool
}

type subscriber[T any] struct {
	fn func(T)
	id uint64
}

// NewSubject creates a subject holding initial.
func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial}
}

// NewDistinctSubject creates a subject that skips publishing values equal
// to the current one.
func NewDistinctSubject[T comparable](initial T) *Subject[T] {
	s := NewSubject(initial)
	s.equal = func(a, b T) bool { return a == b }
	return s
}

// Get returns the current value.
func (s *Subject[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe registers fn and immediately calls it with the current value.
// The returned function removes the subscription; calling it twice is safe.
func (s *Subject[T]) Subscribe(fn func(T)) (dispose func()) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	id := s.next
	s.next++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					break
				}
			}
			s.mu.Unlock()
		})
	}
}

// Publish replaces the current value and notifies subscribers.
// Publishing to a closed subject is a no-op.
func (s *Subject[T]) Publish(v T) {
	s.deliver.Lock()
	defer s.deliver.Unlock()
	s.publish(func(T) T { return v })
}

// Update applies fn to the current value and publishes the result.
// No other Publish or Update can interleave between read and write.
func (s *Subject[T]) Update(fn func(T) T) {
	s.deliver.Lock()
	defer s.deliver.Unlock()
	s.publish(fn)
}

func (s *Subject[T]) publish(fn func(T) T) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	v := fn(s.value)
	if s.equal != nil && s.equal(s.value, v) {
		s.mu.Unlock()
		return
	}
	s.value = v
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Close drops all subscribers. Later publishes are ignored.
func (s *Subject[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = nil
}
