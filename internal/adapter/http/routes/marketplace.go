package routes

import (
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/handlers"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathRequests = "/requests"
	PathPayments = "/payments"
)

func addMarketplaceRoutes(rg *gin.RouterGroup, requestHandler *handlers.ServiceRequestHandler, messageHandler *handlers.MessageHandler, paymentHandler *handlers.QuotePaymentHandler) {
	requests := rg.Group(PathRequests)
	{
		// Criação fica aberta: o formulário público não envia identidade.
		requests.POST("", requestHandler.CreateRequest)

		authed := requests.Group("", middleware.RequireActor())
		{
			authed.GET("", requestHandler.ListRequests)
			authed.GET("/:id", requestHandler.GetRequest)
			authed.PATCH("/:id", requestHandler.TransitionRequest)
			authed.POST("/:id/messages", messageHandler.SendMessage)
			authed.GET("/:id/messages", messageHandler.ListMessages)
		}
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/:request_id", paymentHandler.CreatePaymentByRequestID)
		payments.GET("/:request_id", paymentHandler.GetPaymentByRequestID)
	}
}
