// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/cutout/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed (prevents further processing if needed).
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching. Dispatch is
// synchronous: a handler that issues a scene intent nests on the caller's
// stack, which is what keeps revision ordering deterministic.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.Debugf("Event Manager: Handler subscribed to type %v", eventType)
}

// Dispatch sends an event to all registered handlers for its type.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	e := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	handlers := m.handlers[eventType]
	// Copy so a handler subscribing during dispatch cannot invalidate the slice.
	handlersCopy := make([]Handler, len(handlers))
	copy(handlersCopy, handlers)
	m.mu.RUnlock()

	if len(handlersCopy) == 0 {
		return
	}

	logger.Debugf("Event Manager: Dispatching event type %v to %d handler(s)", eventType, len(handlersCopy))
	for _, handler := range handlersCopy {
		if handler(e) {
			break // Consumed, stop propagation
		}
	}
}
