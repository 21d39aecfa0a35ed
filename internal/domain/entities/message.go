package entities

import "time"

// Message is a chat message attached to a service request.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (service_id-index): service_id
//
// Messages are created either by a direct user action or seeded by the
// request service when a quote is accepted (the optional initial message).

type Message struct {
	ID             string    `json:"id"`
	ServiceID      string    `json:"serviceId"`
	SenderEmail    string    `json:"senderEmail"`
	RecipientEmail string    `json:"recipientEmail"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}
