package reactive

import "sync"

// Stream is a broadcast channel for values of type T. Handlers are
// invoked synchronously, in subscription order, for every published
// value. Unlike Signal, a Stream holds no current value: subscribers
// only see values published after they subscribe.
type Stream[T any] struct {
	// handlers are the active subscriptions, in subscription order.
	handlers []streamHandler[T]

	// mu protects the handlers slice.
	mu sync.RWMutex
}

type streamHandler[T any] struct {
	id uint64
	fn func(T)
}

// NewStream creates an empty stream.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{}
}

// Subscribe registers fn to receive every subsequently published value.
// The returned cancel function removes the subscription; calling it
// more than once is harmless.
func (s *Stream[T]) Subscribe(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	id := nextID()

	s.mu.Lock()
	s.handlers = append(s.handlers, streamHandler[T]{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, h := range s.handlers {
			if h.id == id {
				// Preserve order: delivery order is part of the
				// stream contract.
				s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers value to every subscriber. The handler list is
// copied first so no lock is held during callbacks; a handler may
// subscribe or cancel without deadlocking.
func (s *Stream[T]) Publish(value T) {
	s.mu.RLock()
	handlers := make([]streamHandler[T], len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.RUnlock()

	for _, h := range handlers {
		h.fn(value)
	}
}

// Len reports the number of active subscriptions.
func (s *Stream[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handlers)
}
