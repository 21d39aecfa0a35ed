package handlers

import (
	"errors"
	"net/http"

	request "github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/dto/request"
	response "github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/dto/response"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/middleware"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/pkg"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles direct chat messages on a service request.

type MessageHandler struct {
	usecase usecase.IMessageUseCase
}

func NewMessageHandler(uc usecase.IMessageUseCase) *MessageHandler {
	return &MessageHandler{usecase: uc}
}

// SendMessage records a message from the session actor to the other party
// of the request.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var payload request.SendMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequestPayload.HTTPStatus, errInvalidRequestPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Send(c.Request.Context(), c.Param("id"), middleware.Actor(c), payload.Content)
	if err != nil {
		appErr := mapMessageError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromMessage(created))
}

// ListMessages returns the chat history of a request in chronological order.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages, err := h.usecase.ListByServiceID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapMessageError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromMessages(messages))
}

func mapMessageError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequestID), errors.Is(err, usecase.ErrEmptyMessage), errors.Is(err, usecase.ErrNoCounterpart):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotAParticipant):
		return pkg.NewDomainErrorSimple("NOT_A_PARTICIPANT", "Actor is not a participant of this request", http.StatusForbidden)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Service request not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
