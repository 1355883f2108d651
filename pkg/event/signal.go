package event

import "sync"

// Signal is a synchronous fan-out of typed callbacks. Collaborators
// (views, layer lists, loading layers) expose Signals; the controller
// connects handlers that run inline on the emitting goroutine, so a
// recomputation always completes before the triggering call returns.
//
// Connect returns a disconnect function; callers must invoke it when
// tearing down an attachment to avoid duplicate notifications.
type Signal[T any] struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(T)
}

// Connect registers a handler and returns its disconnect function.
// Disconnect is idempotent.
func (s *Signal[T]) Connect(handler func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handlers == nil {
		s.handlers = make(map[int]func(T))
	}
	id := s.nextID
	s.nextID++
	s.handlers[id] = handler

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, id)
	}
}

// Emit invokes every connected handler inline with the given value.
// Handlers registered during emission are not invoked until the next
// Emit.
func (s *Signal[T]) Emit(value T) {
	s.mu.Lock()
	handlers := make([]func(T), 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(value)
	}
}
