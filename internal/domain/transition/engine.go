package transition

import (
	"errors"
	"fmt"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthorized      = errors.New("actor not allowed to perform transition")
	ErrInvalidPayload    = errors.New("invalid transition payload")
)

// Role identifies which side of the marketplace the actor is on.

type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
)

// Actor is the authenticated identity attempting a transition.

type Actor struct {
	Role  Role
	Email string
}

// Payload carries the optional side data a transition may require. Today
// only the quote, needed when a provider sends an estimate.

type Payload struct {
	Quote *float64
}

// Patch is the set of fields a successful transition writes. Quote and
// ProviderEmail are populated only on the quote-binding transition.

type Patch struct {
	Status        entities.RequestStatus
	Quote         *float64
	ProviderEmail string
}

// Apply validates a proposed status change against the persisted current
// state and returns the patch to write, or the rejection reason. It is a
// pure function: callers replay it after a lost conditional write to obtain
// the precise rejection against the fresh state.
//
// Checks run in a fixed order: current state first (wrong current→target is
// always ErrInvalidTransition, which also covers races), then role and
// identity (ErrUnauthorized), then payload (ErrInvalidPayload).
func Apply(current entities.ServiceRequest, actor Actor, target entities.RequestStatus, payload Payload) (Patch, error) {
	switch target {
	case entities.StatusOrcamentoEnviado:
		return applySendQuote(current, actor, payload)
	case entities.StatusAceito:
		return applyAccept(current, actor)
	case entities.StatusRecusado:
		return applyRefuse(current, actor)
	case entities.StatusCancelado:
		return applyCancel(current, actor)
	case entities.StatusFinalizado:
		return applyFinish(current)
	case entities.StatusPendente:
		// Pendente is a pure initial state, never a target.
		return Patch{}, fmt.Errorf("%w: %s is not a valid target", ErrInvalidTransition, entities.StatusPendente)
	default:
		return Patch{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}
}

// Pendente → Orçamento Enviado: a provider sends a quote and becomes the
// request's bound provider. First successful quote wins; a second provider
// racing on the same request observes a non-Pendente state and is rejected.
func applySendQuote(current entities.ServiceRequest, actor Actor, payload Payload) (Patch, error) {
	if current.Status != entities.StatusPendente {
		return Patch{}, fmt.Errorf("%w: cannot quote a request in status %q", ErrInvalidTransition, current.Status)
	}
	if actor.Role != RoleProvider {
		return Patch{}, fmt.Errorf("%w: only providers send quotes", ErrUnauthorized)
	}
	if payload.Quote == nil || *payload.Quote <= 0 {
		return Patch{}, fmt.Errorf("%w: quote must be a positive number", ErrInvalidPayload)
	}
	quote := *payload.Quote
	return Patch{
		Status:        entities.StatusOrcamentoEnviado,
		Quote:         &quote,
		ProviderEmail: actor.Email,
	}, nil
}

// Orçamento Enviado → Aceito: the client accepts the bound quote.
func applyAccept(current entities.ServiceRequest, actor Actor) (Patch, error) {
	if current.Status != entities.StatusOrcamentoEnviado {
		return Patch{}, fmt.Errorf("%w: cannot accept a request in status %q", ErrInvalidTransition, current.Status)
	}
	if actor.Role != RoleClient {
		return Patch{}, fmt.Errorf("%w: only clients accept quotes", ErrUnauthorized)
	}
	if !current.HasQuote() {
		return Patch{}, fmt.Errorf("%w: no quote bound to request", ErrInvalidPayload)
	}
	return Patch{Status: entities.StatusAceito}, nil
}

// {Pendente, Orçamento Enviado} → Recusado. From Pendente only a provider
// may refuse (declining to quote; the owning client's exit is Cancelado).
// From Orçamento Enviado the owning client may refuse the quote, and the
// bound provider may withdraw it.
func applyRefuse(current entities.ServiceRequest, actor Actor) (Patch, error) {
	switch current.Status {
	case entities.StatusPendente:
		if actor.Role != RoleProvider {
			return Patch{}, fmt.Errorf("%w: only providers refuse pending requests", ErrUnauthorized)
		}
	case entities.StatusOrcamentoEnviado:
		clientOwner := actor.Role == RoleClient && actor.Email == current.ClientEmail
		boundProvider := actor.Role == RoleProvider && actor.Email == current.ProviderEmail
		if !clientOwner && !boundProvider {
			return Patch{}, fmt.Errorf("%w: only the owning client or bound provider refuse a quote", ErrUnauthorized)
		}
	default:
		return Patch{}, fmt.Errorf("%w: cannot refuse a request in status %q", ErrInvalidTransition, current.Status)
	}
	return Patch{Status: entities.StatusRecusado}, nil
}

// {Pendente, Orçamento Enviado} → Cancelado: only the owning client.
func applyCancel(current entities.ServiceRequest, actor Actor) (Patch, error) {
	if current.Status != entities.StatusPendente && current.Status != entities.StatusOrcamentoEnviado {
		return Patch{}, fmt.Errorf("%w: cannot cancel a request in status %q", ErrInvalidTransition, current.Status)
	}
	if actor.Role != RoleClient || actor.Email != current.ClientEmail {
		return Patch{}, fmt.Errorf("%w: only the owning client cancels a request", ErrUnauthorized)
	}
	return Patch{Status: entities.StatusCancelado}, nil
}

// Aceito → Finalizado: a forward step available to either party once the
// quote was accepted.
func applyFinish(current entities.ServiceRequest) (Patch, error) {
	if current.Status != entities.StatusAceito {
		return Patch{}, fmt.Errorf("%w: cannot finish a request in status %q", ErrInvalidTransition, current.Status)
	}
	return Patch{Status: entities.StatusFinalizado}, nil
}
