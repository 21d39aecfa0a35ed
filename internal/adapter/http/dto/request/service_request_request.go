package request

import "strings"

// CreateServiceRequest is the payload for opening a new service request.
// Field names follow the web client's camelCase convention.
type CreateServiceRequest struct {
	ClientEmail string `json:"clientEmail" binding:"required"`
	ClientName  string `json:"clientName"`
	Address     string `json:"address" binding:"required"`
	Contact     string `json:"contact"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required"`
	Photo       string `json:"photo"`
	IsEmergency bool   `json:"isEmergency"`
}

// TransitionServiceRequest is the payload for moving a request to a new
// status. Quote is required only when the target is "Orçamento Enviado";
// InitialMessage is honored only when the target is "Aceito".
type TransitionServiceRequest struct {
	Status         string   `json:"status" binding:"required"`
	Quote          *float64 `json:"quote"`
	InitialMessage string   `json:"initialMessage"`
}

func (r TransitionServiceRequest) ResolveStatus() string {
	return strings.TrimSpace(r.Status)
}

// SendMessage is the payload for writing a chat message on a request.
type SendMessage struct {
	Content string `json:"content" binding:"required"`
}
