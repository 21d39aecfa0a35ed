package routes

import (
	"log"
	"os"
	"strconv"

	_ "github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/docs" // This will be auto-generated
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/handlers"
	repository2 "github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/persistence/repository"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/infrastructure/database"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/infrastructure/payments"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	requestRepo := repository2.NewServiceRequestDynamoRepository(ddb)
	messageRepo := repository2.NewMessageDynamoRepository(ddb)
	quotePaymentRepo := repository2.NewQuotePaymentDynamoRepository(ddb)

	requestUseCase := usecase.NewServiceRequestUseCase(requestRepo, messageRepo)
	messageUseCase := usecase.NewMessageUseCase(messageRepo, requestRepo)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	quotePaymentUseCase := usecase.NewQuotePaymentUseCase(quotePaymentRepo, requestRepo, paymentGateway)

	requestHandler := handlers.NewServiceRequestHandler(requestUseCase)
	messageHandler := handlers.NewMessageHandler(messageUseCase)
	quotePaymentHandler := handlers.NewQuotePaymentHandler(quotePaymentUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addMarketplaceRoutes(v1, requestHandler, messageHandler, quotePaymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
