package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/transition"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage    = errors.New("message content is empty")
	ErrNoCounterpart   = errors.New("request has no counterpart to message")
	ErrNotAParticipant = errors.New("actor is not a participant of the request")
)

// IMessageUseCase exposes direct messaging on a service request.

type IMessageUseCase interface {
	Send(ctx context.Context, serviceID string, actor transition.Actor, content string) (entities.Message, error)
	ListByServiceID(ctx context.Context, serviceID string) ([]entities.Message, error)
}

type MessageUseCase struct {
	repo     interfaces.IMessageRepository
	requests interfaces.IServiceRequestRepository
}

var _ IMessageUseCase = (*MessageUseCase)(nil)

func NewMessageUseCase(repo interfaces.IMessageRepository, requests interfaces.IServiceRequestRepository) *MessageUseCase {
	return &MessageUseCase{repo: repo, requests: requests}
}

// Send records a message from the actor to the other party of the request.
// The recipient is derived from the request itself: the bound provider when
// a client writes, the owning client when the provider writes.
func (u *MessageUseCase) Send(ctx context.Context, serviceID string, actor transition.Actor, content string) (entities.Message, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return entities.Message{}, ErrInvalidRequestID
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return entities.Message{}, ErrEmptyMessage
	}

	r, err := u.requests.GetByID(ctx, serviceID)
	if err != nil {
		return entities.Message{}, err
	}
	if r.ID == "" {
		return entities.Message{}, ErrRequestNotFound
	}

	var recipient string
	switch {
	case actor.Role == transition.RoleClient && actor.Email == r.ClientEmail:
		recipient = r.ProviderEmail
	case actor.Role == transition.RoleProvider && actor.Email == r.ProviderEmail:
		recipient = r.ClientEmail
	default:
		return entities.Message{}, ErrNotAParticipant
	}
	if recipient == "" {
		return entities.Message{}, ErrNoCounterpart
	}

	m := entities.Message{
		ID:             uuid.NewString(),
		ServiceID:      r.ID,
		SenderEmail:    actor.Email,
		RecipientEmail: recipient,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	return u.repo.Create(ctx, m)
}

func (u *MessageUseCase) ListByServiceID(ctx context.Context, serviceID string) ([]entities.Message, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return nil, ErrInvalidRequestID
	}
	return u.repo.ListByServiceID(ctx, serviceID)
}
