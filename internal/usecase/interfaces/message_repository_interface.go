package interfaces

import (
	"context"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
)

// IMessageRepository abstracts DynamoDB persistence for Message.

type IMessageRepository interface {
	Create(ctx context.Context, m entities.Message) (entities.Message, error)
	ListByServiceID(ctx context.Context, serviceID string) ([]entities.Message, error)
}
