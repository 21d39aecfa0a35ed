package response

import (
	"time"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
)

type ServiceRequestResponse struct {
	ID            string    `json:"id"`
	ClientEmail   string    `json:"clientEmail"`
	ClientName    string    `json:"clientName"`
	Address       string    `json:"address"`
	Contact       string    `json:"contact"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Photo         string    `json:"photo,omitempty"`
	Status        string    `json:"status"`
	Quote         *float64  `json:"quote,omitempty"`
	ProviderEmail string    `json:"providerEmail,omitempty"`
	IsEmergency   bool      `json:"isEmergency"`
	RequestDate   time.Time `json:"requestDate"`
}

func FromServiceRequest(r entities.ServiceRequest) ServiceRequestResponse {
	return ServiceRequestResponse{
		ID:            r.ID,
		ClientEmail:   r.ClientEmail,
		ClientName:    r.ClientName,
		Address:       r.Address,
		Contact:       r.Contact,
		Category:      string(r.Category),
		Description:   r.Description,
		Photo:         r.Photo,
		Status:        string(r.Status),
		Quote:         r.Quote,
		ProviderEmail: r.ProviderEmail,
		IsEmergency:   r.IsEmergency,
		RequestDate:   r.RequestDate,
	}
}

func FromServiceRequests(rs []entities.ServiceRequest) []ServiceRequestResponse {
	out := make([]ServiceRequestResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromServiceRequest(r))
	}
	return out
}
