package event

import "reflect"

// Bus is a double-buffered event bus. Events emitted during tick N are
// delivered in tick N+1 after SwapBuffers, in the order they were emitted,
// so replays of a seeded session see the same handler sequence.
// Single-goroutine, like the rest of the world loop.
type Bus struct {
	front    []any
	back     []any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 64),
		back:     make([]any, 0, 64),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event for the next dispatch. A nil bus drops it, so
// components can run without one.
func Emit[T any](b *Bus, event T) {
	if b == nil {
		return
	}
	b.back = append(b.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// SwapBuffers makes the events emitted since the last swap dispatchable.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers the front buffer in emission order.
func (b *Bus) DispatchAll() {
	for _, ev := range b.front {
		for _, h := range b.handlers[reflect.TypeOf(ev)] {
			reflect.ValueOf(h).Call([]reflect.Value{reflect.ValueOf(ev)})
		}
	}
}

// Pending returns the number of events waiting for the next swap.
func (b *Bus) Pending() int { return len(b.back) }

// Clear drops both buffers; used when a session is reset.
func (b *Bus) Clear() {
	b.front = b.front[:0]
	b.back = b.back[:0]
}
