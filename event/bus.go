package event

import (
	"sync"
	"time"
)

// Event is a widget lifecycle notification carrying the state at emission time
type Event struct {
	Type    EventType
	Time    time.Time
	RotX    float64
	RotY    float64
	VelX    float64
	VelY    float64
	Pointer int // Pointer id for drag events, 0 otherwise
}

// Handler receives published events on the publisher's goroutine
// Handlers must not block; the widget publishes from the frame loop
type Handler func(Event)

// Bus fans events out to subscribers in registration order
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	all      []Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe registers h for the given types, or for every type when none are given
func (b *Bus) Subscribe(h Handler, types ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(types) == 0 {
		b.all = append(b.all, h)
		return
	}
	for _, t := range types {
		b.handlers[t] = append(b.handlers[t], h)
	}
}

// Publish delivers ev to typed subscribers first, then catch-all subscribers
// Nil bus is a valid no-op
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	typed := b.handlers[ev.Type]
	all := b.all
	b.mu.RUnlock()

	for _, h := range typed {
		h(ev)
	}
	for _, h := range all {
		h(ev)
	}
}
