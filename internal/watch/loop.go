package watch

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/transition"
)

// DefaultInterval is the nominal poll period.
const DefaultInterval = 15 * time.Second

// FetchFunc returns the requests currently visible to the loop's actor.
type FetchFunc func(ctx context.Context) ([]entities.ServiceRequest, error)

// Loop polls the request list on a fixed period and diffs each snapshot
// against the previous one, publishing an event for every transition that is
// relevant to the actor's role:
//
//   - provider: a request entering Pendente that was not in the previous
//     pending set fires new_request;
//   - client: an owned request moving into Orçamento Enviado fires
//     quote_received;
//   - provider: a bound request moving into Aceito fires quote_accepted and
//     into Cancelado fires request_cancelled.
//
// The first successful fetch only seeds the snapshot, no events fire for
// state that predates the loop. A failed fetch keeps the last good snapshot
// so the next successful poll diffs against it.
type Loop struct {
	fetch    FetchFunc
	actor    transition.Actor
	bus      *Bus
	interval time.Duration

	mu     sync.Mutex
	paused bool
	kick   chan struct{}

	prevStatus  map[string]entities.RequestStatus
	prevPending map[string]struct{}
	primed      bool
}

func NewLoop(fetch FetchFunc, actor transition.Actor, bus *Bus, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		fetch:       fetch,
		actor:       actor,
		bus:         bus,
		interval:    interval,
		kick:        make(chan struct{}, 1),
		prevStatus:  make(map[string]entities.RequestStatus),
		prevPending: make(map[string]struct{}),
	}
}

// Run polls until ctx is cancelled. The first fetch happens immediately.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.kick:
			l.poll(ctx)
		case <-ticker.C:
			if l.isPaused() {
				continue
			}
			l.poll(ctx)
		}
	}
}

// Pause suspends polling until Resume is called. Useful while the user is
// mid-input and a refresh would be disruptive.
func (l *Loop) Pause() {
	l.mu.Lock()
	l.paused = true
	l.mu.Unlock()
}

// Resume re-enables polling and triggers one immediate fetch instead of
// waiting for the next period boundary.
func (l *Loop) Resume() {
	l.mu.Lock()
	was := l.paused
	l.paused = false
	l.mu.Unlock()

	if was {
		select {
		case l.kick <- struct{}{}:
		default:
		}
	}
}

func (l *Loop) isPaused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

func (l *Loop) poll(ctx context.Context) {
	requests, err := l.fetch(ctx)
	if err != nil {
		// Keep the last good snapshot, the next successful fetch diffs
		// against it.
		log.Printf("[watch][loop] fetch failed actor=%s err=%v", l.actor.Email, err)
		return
	}

	for _, e := range l.diff(requests) {
		l.bus.Publish(e)
	}
}

// diff compares the fetched snapshot against the previous one and returns
// the events to publish, then replaces the snapshot. A transition counts as
// new only when the previously seen status differs, absence included, so
// repeated identical fetches emit nothing.
func (l *Loop) diff(requests []entities.ServiceRequest) []Event {
	currentStatus := make(map[string]entities.RequestStatus, len(requests))
	currentPending := make(map[string]struct{})

	var events []Event
	for _, r := range requests {
		currentStatus[r.ID] = r.Status
		if r.Status == entities.StatusPendente {
			currentPending[r.ID] = struct{}{}
		}

		if !l.primed {
			continue
		}

		if l.actor.Role == transition.RoleProvider && r.Status == entities.StatusPendente {
			if _, known := l.prevPending[r.ID]; !known {
				events = append(events, Event{Type: EventNewRequest, Request: r})
			}
			continue
		}

		if prev, seen := l.prevStatus[r.ID]; seen && prev == r.Status {
			continue
		}

		switch r.Status {
		case entities.StatusOrcamentoEnviado:
			if l.actor.Role == transition.RoleClient && r.ClientEmail == l.actor.Email {
				events = append(events, Event{Type: EventQuoteReceived, Request: r})
			}
		case entities.StatusAceito:
			if l.actor.Role == transition.RoleProvider && r.ProviderEmail == l.actor.Email {
				events = append(events, Event{Type: EventQuoteAccepted, Request: r})
			}
		case entities.StatusCancelado:
			if l.actor.Role == transition.RoleProvider && r.ProviderEmail == l.actor.Email {
				events = append(events, Event{Type: EventRequestCancelled, Request: r})
			}
		}
	}

	l.prevStatus = currentStatus
	l.prevPending = currentPending
	l.primed = true
	return events
}
