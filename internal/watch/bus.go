package watch

import (
	"log"
	"sync"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
)

// EventType identifies what a notification event is about.
type EventType string

const (
	EventNewRequest       EventType = "new_request"
	EventQuoteReceived    EventType = "quote_received"
	EventQuoteAccepted    EventType = "quote_accepted"
	EventRequestCancelled EventType = "request_cancelled"
)

// Event carries the request snapshot that triggered the notification.
type Event struct {
	Type    EventType
	Request entities.ServiceRequest
}

const subscriberBuffer = 16

// Bus is an in-process publish/subscribe channel for notification events.
// Publish never blocks: events for a subscriber whose buffer is full are
// dropped, the poll loop must not stall on a slow consumer.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a new consumer. The returned cancel func removes the
// subscription and closes its channel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish fans the event out to every subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- e:
		default:
			log.Printf("[watch][bus] subscriber %d full, dropping event type=%s request_id=%s", id, e.Type, e.Request.ID)
		}
	}
}
