// Package eventbus is an in-process publish/subscribe channel used to decouple
// the push bridge from the alert feed. Events carry a name and no payload.
package eventbus

import "sync"

// RefreshAlerts tells any active feed to refetch from the alerts endpoint.
const RefreshAlerts = "REFRESH_ALERTS"

// Handler is invoked synchronously on publish. The bus does not recover
// panics: a panicking handler aborts the remaining dispatch and propagates
// to the publisher.
type Handler func()

// Subscription identifies one registered handler so it can be removed later.
type Subscription struct {
	event   string
	handler Handler
}

// Bus is constructed once at process start and passed explicitly to
// consumers. Subscription bookkeeping is mutex-guarded because publishers
// run on consumer goroutines; dispatch itself is synchronous.
type Bus struct {
	mu       sync.Mutex
	handlers map[string][]*Subscription
}

func New() *Bus {
	return &Bus{handlers: make(map[string][]*Subscription)}
}

// Subscribe registers handler under event. Multiple handlers per event are
// allowed and are invoked in registration order.
func (b *Bus) Subscribe(event string, handler Handler) *Subscription {
	sub := &Subscription{event: event, handler: handler}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], sub)
	return sub
}

// Unsubscribe removes exactly the given subscription. It is a no-op when sub
// is nil, already removed, or was never registered on this bus.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[sub.event]
	for i, s := range subs {
		if s == sub {
			b.handlers[sub.event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish synchronously invokes every handler currently registered for event,
// in registration order. Publishing with no subscribers is a silent no-op.
func (b *Bus) Publish(event string) {
	b.mu.Lock()
	subs := append([]*Subscription(nil), b.handlers[event]...)
	b.mu.Unlock()
	for _, s := range subs {
		s.handler()
	}
}
