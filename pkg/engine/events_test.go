package engine

import (
	"testing"
	"time"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var first, second int
	bus.Subscribe(func(Event) { first++ })
	bus.Subscribe(func(Event) { second++ })

	bus.Publish(Event{Type: EventGrowthStarted, Timestamp: time.Now()})

	if first != 1 || second != 1 {
		t.Errorf("delivery counts = %d/%d, want 1/1", first, second)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	var calls int
	id := bus.Subscribe(func(Event) { calls++ })
	bus.Unsubscribe(id)
	bus.Publish(Event{Type: EventGrowthStarted})

	if calls != 0 {
		t.Errorf("unsubscribed handler was called %d times", calls)
	}

	// Unknown IDs are ignored.
	bus.Unsubscribe("no-such-subscription")
}

func TestBusSurvivesPanickingHandler(t *testing.T) {
	bus := NewBus()

	var delivered bool
	bus.Subscribe(func(Event) { panic("bad subscriber") })
	bus.Subscribe(func(Event) { delivered = true })

	bus.Publish(Event{Type: EventFollowersUpdated})

	if !delivered {
		t.Error("panicking handler blocked delivery to others")
	}
}
