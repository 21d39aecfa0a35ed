package interfaces

import (
	"context"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/transition"
)

// IServiceRequestRepository abstracts DynamoDB persistence for ServiceRequest.
//
// Contract followed by all implementations:
//   - a zero-value ServiceRequest with nil error means "not there" (unknown
//     id, or a conditional write that lost its guard); the use case decides
//     how to surface it.
//   - ApplyTransition must write the patch atomically relative to other
//     writers on the same id: the write only lands if the persisted status
//     still equals expectedStatus (single-row compare-and-swap). Two racing
//     quotes on the same Pendente request must not both succeed.

type IServiceRequestRepository interface {
	Create(ctx context.Context, r entities.ServiceRequest) (entities.ServiceRequest, error)
	GetByID(ctx context.Context, id string) (entities.ServiceRequest, error)
	ListByClientEmail(ctx context.Context, clientEmail string) ([]entities.ServiceRequest, error)
	ListPending(ctx context.Context) ([]entities.ServiceRequest, error)
	ListByProviderEmail(ctx context.Context, providerEmail string) ([]entities.ServiceRequest, error)
	ApplyTransition(ctx context.Context, id string, expectedStatus entities.RequestStatus, patch transition.Patch) (entities.ServiceRequest, error)
}
