package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDeliversToMatchingSubscribers(t *testing.T) {
	bus := NewBus()
	var got []Type
	bus.Subscribe(func(e Event) { got = append(got, e.Type) }, PreferencesAllergies, PreferencesVegan)

	bus.Publish(Event{Type: PreferencesAllergies})
	bus.Publish(Event{Type: ReviewsChanged})
	bus.Publish(Event{Type: PreferencesVegan})

	assert.Equal(t, []Type{PreferencesAllergies, PreferencesVegan}, got)
}

func TestSubscribeAllRunsAfterTypedHandlers(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.SubscribeAll(func(Event) { order = append(order, "all") })
	bus.Subscribe(func(Event) { order = append(order, "typed") }, FiltersChanged)

	bus.Publish(Event{Type: FiltersChanged})
	assert.Equal(t, []string{"typed", "all"}, order)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	cancel := bus.Subscribe(func(Event) { calls++ }, ReviewsChanged)
	cancelAll := bus.SubscribeAll(func(Event) { calls++ })

	bus.Publish(Event{Type: ReviewsChanged})
	cancel()
	cancelAll()
	cancel()
	bus.Publish(Event{Type: ReviewsChanged})

	assert.Equal(t, 2, calls)
}

func TestHandlersMayPublish(t *testing.T) {
	bus := NewBus()
	var seen []Type
	bus.Subscribe(func(e Event) {
		seen = append(seen, e.Type)
		bus.Publish(Event{Type: FiltersChanged, Payload: e.Payload})
	}, PreferencesAllergies)
	bus.Subscribe(func(e Event) { seen = append(seen, e.Type) }, FiltersChanged)

	bus.Publish(Event{Type: PreferencesAllergies, Payload: "peanuts"})
	assert.Equal(t, []Type{PreferencesAllergies, FiltersChanged}, seen)
}
