package events

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscription identifies one registered handler
type Subscription int

type subscriber struct {
	id      Subscription
	handler EventHandler
}

// EventManager manages event subscriptions and dispatches synchronously,
// in subscription order, on the emitting goroutine
type EventManager struct {
	subscribers map[EventType][]subscriber
	nextID      Subscription
}

// NewEventManager creates a new event manager
func NewEventManager() *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]subscriber),
	}
}

// Subscribe registers a handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) Subscription {
	em.nextID++
	em.subscribers[eventType] = append(em.subscribers[eventType], subscriber{id: em.nextID, handler: handler})
	return em.nextID
}

// SubscribeAll registers one handler for several event types
func (em *EventManager) SubscribeAll(handler EventHandler, eventTypes ...EventType) []Subscription {
	ids := make([]Subscription, 0, len(eventTypes))
	for _, t := range eventTypes {
		ids = append(ids, em.Subscribe(t, handler))
	}
	return ids
}

// Unsubscribe removes a handler registered with Subscribe
func (em *EventManager) Unsubscribe(eventType EventType, id Subscription) {
	subs, exists := em.subscribers[eventType]
	if !exists {
		return
	}

	kept := make([]subscriber, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			kept = append(kept, s)
		}
	}

	if len(kept) == 0 {
		delete(em.subscribers, eventType)
	} else {
		em.subscribers[eventType] = kept
	}
}

// Emit dispatches an event to all subscribed handlers
func (em *EventManager) Emit(event Event) {
	if em == nil {
		return
	}
	for _, s := range em.subscribers[event.Type()] {
		s.handler(event)
	}
}
