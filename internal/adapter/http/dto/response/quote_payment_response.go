package response

import (
	"time"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
)

type QuotePaymentResponse struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromQuotePayment(p entities.QuotePayment) QuotePaymentResponse {
	return QuotePaymentResponse{
		ID:           p.ID,
		RequestID:    p.RequestID,
		Amount:       p.Amount,
		Date:         p.Date,
		Status:       string(p.Status),
		MPPayloadRaw: string(p.MPPayloadRaw),
		MPPayload:    p.MPPayload,
	}
}
