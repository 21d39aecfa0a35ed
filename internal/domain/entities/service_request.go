package entities

import "time"

// RequestStatus represents the lifecycle of a service request.
//
// Domain notes:
//   - The literals are user-facing and must keep their diacritics; the web
//     client matches on the exact strings.
//   - Status is mutated exclusively through the transition engine
//     (internal/domain/transition); nothing else writes it.

type RequestStatus string

const (
	StatusPendente         RequestStatus = "Pendente"
	StatusOrcamentoEnviado RequestStatus = "Orçamento Enviado"
	StatusAceito           RequestStatus = "Aceito"
	StatusRecusado         RequestStatus = "Recusado"
	StatusFinalizado       RequestStatus = "Finalizado"
	StatusCancelado        RequestStatus = "Cancelado"
)

// ServiceCategory is the fixed set of service types a client can request.

type ServiceCategory string

const (
	CategoryEletrica      ServiceCategory = "Elétrica"
	CategoryHidraulica    ServiceCategory = "Hidráulica"
	CategoryPintura       ServiceCategory = "Pintura"
	CategoryMontagem      ServiceCategory = "Montagem"
	CategoryJardinagem    ServiceCategory = "Jardinagem"
	CategoryReparosGerais ServiceCategory = "Reparos Gerais"
	CategoryCFTV          ServiceCategory = "CFTV"
)

// ServiceRequest is the marketplace's central entity: a client's service
// ticket tracked through the status lifecycle.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (client_email-index): client_email
//   - GSI2 (status-index): status
//   - GSI3 (provider_email-index): provider_email
//
// Field rules:
//   - Everything the client supplies at creation is immutable afterwards.
//   - Quote is set exactly once, when the request enters Orçamento Enviado,
//     and persists through Aceito/Finalizado. Nil means no quote bound.
//   - ProviderEmail is bound together with the quote and never reassigned;
//     the first provider to quote wins.

type ServiceRequest struct {
	ID            string          `json:"id"`
	ClientEmail   string          `json:"clientEmail"`
	ClientName    string          `json:"clientName"`
	Address       string          `json:"address"`
	Contact       string          `json:"contact"`
	Category      ServiceCategory `json:"category"`
	Description   string          `json:"description"`
	Photo         string          `json:"photo,omitempty"`
	Status        RequestStatus   `json:"status"`
	Quote         *float64        `json:"quote,omitempty"`
	ProviderEmail string          `json:"providerEmail,omitempty"`
	IsEmergency   bool            `json:"isEmergency"`
	RequestDate   time.Time       `json:"requestDate"`
}

// HasQuote reports whether a positive quote is bound to the request.
func (r ServiceRequest) HasQuote() bool {
	return r.Quote != nil && *r.Quote > 0
}
