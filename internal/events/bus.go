// Package events is the in-process change notification bus. Delivery is
// synchronous: Publish returns after every handler has run, so state derived
// in a handler is visible to the publisher's caller.
package events

import "sync"

// Type names a kind of change.
type Type string

const (
	PreferencesLoaded              Type = "preferences.loaded"
	PreferencesAllergies           Type = "preferences.allergies"
	PreferencesExcludedIngredients Type = "preferences.excluded_ingredients"
	PreferencesVegan               Type = "preferences.vegan"
	PreferencesFavorites           Type = "preferences.favorites"
	PreferencesReset               Type = "preferences.reset"
	PreferencesUpdated             Type = "preferences.updated"
	FiltersChanged                 Type = "filters.changed"
	ReviewsChanged                 Type = "reviews.changed"
)

// Event is a single notification. Payload is a snapshot owned by the receiver.
type Event struct {
	Type    Type
	Payload interface{}
}

// Handler receives events it subscribed to.
type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus fans events out to subscribers.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	byType map[Type][]subscription
	all    []subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{byType: make(map[Type][]subscription)}
}

// Subscribe registers h for the given types and returns a function that removes it.
func (b *Bus) Subscribe(h Handler, types ...Type) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := subscription{id: b.nextID, handler: h}
	for _, t := range types {
		b.byType[t] = append(b.byType[t], sub)
	}
	return b.unsubscriber(sub.id)
}

// SubscribeAll registers h for every event type.
func (b *Bus) SubscribeAll(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := subscription{id: b.nextID, handler: h}
	b.all = append(b.all, sub)
	return b.unsubscriber(sub.id)
}

func (b *Bus) unsubscriber(id uint64) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for t, subs := range b.byType {
				b.byType[t] = without(subs, id)
			}
			b.all = without(b.all, id)
		})
	}
}

// Publish delivers e to type subscribers in registration order, then to
// catch-all subscribers. Handlers run without the bus lock held and may publish.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	targets := make([]Handler, 0, len(b.byType[e.Type])+len(b.all))
	for _, s := range b.byType[e.Type] {
		targets = append(targets, s.handler)
	}
	for _, s := range b.all {
		targets = append(targets, s.handler)
	}
	b.mu.RUnlock()

	for _, h := range targets {
		h(e)
	}
}

func without(subs []subscription, id uint64) []subscription {
	out := subs[:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}
