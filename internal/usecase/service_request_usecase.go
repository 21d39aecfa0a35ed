package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/transition"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound      = errors.New("service request not found")
	ErrInvalidRequestID     = errors.New("invalid request id")
	ErrMissingRequestFields = errors.New("missing required request fields")
)

// CreateRequestInput is the client-supplied data for a new service request.

type CreateRequestInput struct {
	ClientEmail string
	ClientName  string
	Address     string
	Contact     string
	Category    entities.ServiceCategory
	Description string
	Photo       string
	IsEmergency bool
}

// TransitionInput carries the optional side data of a transition request.
// InitialMessage is only honored when the target status is Aceito.

type TransitionInput struct {
	Quote          *float64
	InitialMessage string
}

// IServiceRequestUseCase exposes the service-request lifecycle operations.

type IServiceRequestUseCase interface {
	Create(ctx context.Context, input CreateRequestInput) (entities.ServiceRequest, error)
	Transition(ctx context.Context, id string, actor transition.Actor, target entities.RequestStatus, input TransitionInput) (entities.ServiceRequest, error)
	GetByID(ctx context.Context, id string) (entities.ServiceRequest, error)
	ListForActor(ctx context.Context, actor transition.Actor) ([]entities.ServiceRequest, error)
}

type ServiceRequestUseCase struct {
	repo     interfaces.IServiceRequestRepository
	messages interfaces.IMessageRepository
}

var _ IServiceRequestUseCase = (*ServiceRequestUseCase)(nil)

func NewServiceRequestUseCase(repo interfaces.IServiceRequestRepository, messages interfaces.IMessageRepository) *ServiceRequestUseCase {
	return &ServiceRequestUseCase{repo: repo, messages: messages}
}

func (u *ServiceRequestUseCase) Create(ctx context.Context, input CreateRequestInput) (entities.ServiceRequest, error) {
	input.ClientEmail = strings.TrimSpace(input.ClientEmail)
	if input.ClientEmail == "" ||
		strings.TrimSpace(string(input.Category)) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Address) == "" {
		return entities.ServiceRequest{}, ErrMissingRequestFields
	}

	r := entities.ServiceRequest{
		ID:          uuid.NewString(),
		ClientEmail: input.ClientEmail,
		ClientName:  strings.TrimSpace(input.ClientName),
		Address:     strings.TrimSpace(input.Address),
		Contact:     strings.TrimSpace(input.Contact),
		Category:    input.Category,
		Description: input.Description,
		Photo:       input.Photo,
		Status:      entities.StatusPendente,
		IsEmergency: input.IsEmergency,
		RequestDate: time.Now().UTC(),
	}
	return u.repo.Create(ctx, r)
}

// Transition validates and applies a status change end to end: load the
// persisted state, run the transition engine, write the patch guarded on
// the loaded status, and seed the optional initial message on acceptance.
func (u *ServiceRequestUseCase) Transition(ctx context.Context, id string, actor transition.Actor, target entities.RequestStatus, input TransitionInput) (entities.ServiceRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceRequest{}, ErrInvalidRequestID
	}

	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if current.ID == "" {
		return entities.ServiceRequest{}, ErrRequestNotFound
	}

	patch, err := transition.Apply(current, actor, target, transition.Payload{Quote: input.Quote})
	if err != nil {
		return entities.ServiceRequest{}, err
	}

	updated, err := u.repo.ApplyTransition(ctx, id, current.Status, patch)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if updated.ID == "" {
		// The conditional write lost its guard: a concurrent writer moved the
		// request after our read. Replay the engine against the fresh state so
		// the caller gets the precise rejection.
		fresh, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return entities.ServiceRequest{}, err
		}
		if fresh.ID == "" {
			return entities.ServiceRequest{}, ErrRequestNotFound
		}
		if _, err := transition.Apply(fresh, actor, target, transition.Payload{Quote: input.Quote}); err != nil {
			return entities.ServiceRequest{}, err
		}
		return entities.ServiceRequest{}, fmt.Errorf("%w: request changed concurrently", transition.ErrInvalidTransition)
	}

	if target == entities.StatusAceito {
		u.seedInitialMessage(ctx, updated, input.InitialMessage)
	}

	return updated, nil
}

// seedInitialMessage creates the client→provider message that accompanies an
// acceptance. Best-effort: a failure here never fails the transition.
func (u *ServiceRequestUseCase) seedInitialMessage(ctx context.Context, r entities.ServiceRequest, content string) {
	content = strings.TrimSpace(content)
	if content == "" || r.ProviderEmail == "" {
		return
	}
	if u.messages == nil {
		log.Printf("[request][usecase] message repository not configured; skipping initial message request_id=%s", r.ID)
		return
	}

	m := entities.Message{
		ID:             uuid.NewString(),
		ServiceID:      r.ID,
		SenderEmail:    r.ClientEmail,
		RecipientEmail: r.ProviderEmail,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := u.messages.Create(ctx, m); err != nil {
		log.Printf("[request][usecase] initial message seeding failed request_id=%s err=%v", r.ID, err)
	}
}

func (u *ServiceRequestUseCase) GetByID(ctx context.Context, id string) (entities.ServiceRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceRequest{}, ErrInvalidRequestID
	}

	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if r.ID == "" {
		return entities.ServiceRequest{}, ErrRequestNotFound
	}
	return r, nil
}

// ListForActor returns the requests visible to the actor: clients see their
// own requests; providers see every Pendente request plus the ones they are
// bound to.
func (u *ServiceRequestUseCase) ListForActor(ctx context.Context, actor transition.Actor) ([]entities.ServiceRequest, error) {
	if actor.Role == transition.RoleClient {
		return u.repo.ListByClientEmail(ctx, actor.Email)
	}

	pending, err := u.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	bound, err := u.repo.ListByProviderEmail(ctx, actor.Email)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(pending))
	out := make([]entities.ServiceRequest, 0, len(pending)+len(bound))
	for _, r := range pending {
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	for _, r := range bound {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
