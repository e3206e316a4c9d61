package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"instagrowth/pkg/models"
)

// EventType enumerates the engine's lifecycle notifications.
type EventType string

const (
	EventGrowthStarted    EventType = "growth_started"
	EventGrowthStopped    EventType = "growth_stopped"
	EventFollowersUpdated EventType = "followers_updated"
	EventTargetReached    EventType = "target_reached"
	EventSettingsUpdated  EventType = "settings_updated"
)

// Event is a single engine notification. Fields beyond Type and Timestamp
// are populated per event type.
type Event struct {
	Type      EventType
	Timestamp time.Time

	// EventGrowthStarted
	Username string

	// EventFollowersUpdated
	Amount     int
	Total      int
	TodayTotal int

	// EventTargetReached
	Current int
	Target  int

	// EventGrowthStarted, EventSettingsUpdated
	Settings *models.GrowthSettings
}

// Handler receives events. Handlers run synchronously on the engine's tick
// goroutine and must not block.
type Handler func(Event)

// Bus is a small in-process publish/subscribe hub keyed by opaque
// subscription IDs.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string]Handler)}
}

// Subscribe registers a handler and returns its subscription ID.
func (b *Bus) Subscribe(h Handler) string {
	id := uuid.NewString()
	b.mu.Lock()
	b.handlers[id] = h
	b.mu.Unlock()
	return id
}

// Unsubscribe removes a handler. Unknown IDs are ignored.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	delete(b.handlers, id)
	b.mu.Unlock()
}

// Publish delivers the event to every subscriber. A panicking handler is
// swallowed so one bad subscriber cannot take down the tick loop.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() { recover() }()
			h(e)
		}()
	}
}
