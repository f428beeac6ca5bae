package stream

import "sync"

// Source is anything that can be subscribed to.
type Source[T any] interface {
	Subscribe(fn func(T)) (dispose func())
}

// Observable is a read-only view of a Subject.
type Observable[T any] interface {
	Source[T]
	Get() T
}

// Bus delivers values to the subscribers present at emit time. Unlike
// Subject it keeps no current value: late subscribers miss earlier values.
type Bus[T any] struct {
	deliver sync.Mutex

	mu     sync.Mutex
	subs   []subscriber[T]
	next   uint64
	closed bool
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers fn for future values.
func (b *Bus[T]) Subscribe(fn func(T)) (dispose func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return func() {}
	}
	id := b.next
	b.next++
	b.subs = append(b.subs, subscriber[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, sub := range b.subs {
				if sub.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Emit delivers v to every subscriber, serialized with other emits.
func (b *Bus[T]) Emit(v T) {
	b.deliver.Lock()
	defer b.deliver.Unlock()

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	subs := make([]subscriber[T], len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Close drops all subscribers.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = nil
}

var (
	_ Observable[int] = (*Subject[int])(nil)
	_ Source[int]     = (*Bus[int])(nil)
)
