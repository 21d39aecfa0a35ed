package response

import (
	"time"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
)

type MessageResponse struct {
	ID             string    `json:"id"`
	ServiceID      string    `json:"serviceId"`
	SenderEmail    string    `json:"senderEmail"`
	RecipientEmail string    `json:"recipientEmail"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

func FromMessage(m entities.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ServiceID:      m.ServiceID,
		SenderEmail:    m.SenderEmail,
		RecipientEmail: m.RecipientEmail,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func FromMessages(ms []entities.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMessage(m))
	}
	return out
}
