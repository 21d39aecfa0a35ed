package handlers

import (
	"errors"
	"net/http"

	request "github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/dto/request"
	response "github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/dto/response"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/middleware"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/transition"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidRequestPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST_INPUT", "Invalid request payload", http.StatusBadRequest)

// ServiceRequestHandler handles HTTP requests for the service-request
// lifecycle: creation, actor-scoped listing and status transitions.

type ServiceRequestHandler struct {
	usecase usecase.IServiceRequestUseCase
}

func NewServiceRequestHandler(uc usecase.IServiceRequestUseCase) *ServiceRequestHandler {
	return &ServiceRequestHandler{usecase: uc}
}

// CreateRequest opens a new service request in status Pendente.
func (h *ServiceRequestHandler) CreateRequest(c *gin.Context) {
	var payload request.CreateServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequestPayload.HTTPStatus, errInvalidRequestPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), usecase.CreateRequestInput{
		ClientEmail: payload.ClientEmail,
		ClientName:  payload.ClientName,
		Address:     payload.Address,
		Contact:     payload.Contact,
		Category:    entities.ServiceCategory(payload.Category),
		Description: payload.Description,
		Photo:       payload.Photo,
		IsEmergency: payload.IsEmergency,
	})
	if err != nil {
		appErr := mapServiceRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromServiceRequest(created))
}

// TransitionRequest moves a request to the proposed status on behalf of the
// session actor. Quote and initial message ride in the payload when the
// target transition uses them.
func (h *ServiceRequestHandler) TransitionRequest(c *gin.Context) {
	var payload request.TransitionServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequestPayload.HTTPStatus, errInvalidRequestPayload.ToHTTPError())
		return
	}

	status := payload.ResolveStatus()
	if status == "" {
		c.JSON(errInvalidRequestPayload.HTTPStatus, errInvalidRequestPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.Transition(
		c.Request.Context(),
		c.Param("id"),
		middleware.Actor(c),
		entities.RequestStatus(status),
		usecase.TransitionInput{Quote: payload.Quote, InitialMessage: payload.InitialMessage},
	)
	if err != nil {
		appErr := mapServiceRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceRequest(updated))
}

// ListRequests returns the requests visible to the session actor: clients
// see their own, providers see pending plus bound ones.
func (h *ServiceRequestHandler) ListRequests(c *gin.Context) {
	requests, err := h.usecase.ListForActor(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		appErr := mapServiceRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceRequests(requests))
}

// GetRequest returns a single request by id.
func (h *ServiceRequestHandler) GetRequest(c *gin.Context) {
	r, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapServiceRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceRequest(r))
}

func mapServiceRequestError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequestID), errors.Is(err, usecase.ErrMissingRequestFields):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, transition.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", "Status transition not allowed", err, http.StatusBadRequest)
	case errors.Is(err, transition.ErrInvalidPayload):
		return pkg.NewDomainError("INVALID_PAYLOAD", "Transition payload is missing or invalid", err, http.StatusBadRequest)
	case errors.Is(err, transition.ErrUnauthorized):
		return pkg.NewDomainError("UNAUTHORIZED_TRANSITION", "Actor not allowed to perform this transition", err, http.StatusForbidden)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Service request not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
