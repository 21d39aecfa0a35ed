package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase/interfaces"
)

var (
	ErrQuotePaymentNotFound       = errors.New("quote payment not found")
	ErrInvalidMPPayload           = errors.New("invalid mercado pago payload")
	ErrRequestNotPayable          = errors.New("request is not payable")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
)

// IQuotePaymentUseCase encapsulates the "pay the accepted quote" behavior.
//
// A request becomes payable once its quote was accepted (Aceito) and stays
// payable after completion (Finalizado). The charged amount is always the
// quote bound to the request, never the caller's payload.

type IQuotePaymentUseCase interface {
	CreateAndApprove(ctx context.Context, requestID string, mpPayload json.RawMessage) (entities.QuotePayment, error)
	ListByRequestID(ctx context.Context, requestID string) ([]entities.QuotePayment, error)
}

type QuotePaymentUseCase struct {
	repo     interfaces.IQuotePaymentRepository
	requests interfaces.IServiceRequestRepository
	gateway  interfaces.IPaymentGateway
}

var _ IQuotePaymentUseCase = (*QuotePaymentUseCase)(nil)

func NewQuotePaymentUseCase(repo interfaces.IQuotePaymentRepository, requests interfaces.IServiceRequestRepository, gateway interfaces.IPaymentGateway) *QuotePaymentUseCase {
	return &QuotePaymentUseCase{repo: repo, requests: requests, gateway: gateway}
}

func (u *QuotePaymentUseCase) CreateAndApprove(ctx context.Context, requestID string, mpPayload json.RawMessage) (entities.QuotePayment, error) {
	log.Printf("[payment][usecase] create-and-approve start request_id=%q payload_len=%d", requestID, len(mpPayload))
	mockMode := isPaymentGatewayMockEnabled()
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return entities.QuotePayment{}, ErrInvalidRequestID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			log.Printf("[payment][usecase] invalid payload request_id=%s", requestID)
			return entities.QuotePayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		return entities.QuotePayment{}, errors.New("payment gateway not configured")
	}

	r, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		return entities.QuotePayment{}, err
	}
	if r.ID == "" {
		return entities.QuotePayment{}, ErrRequestNotFound
	}
	if r.Status != entities.StatusAceito && r.Status != entities.StatusFinalizado {
		log.Printf("[payment][usecase] request not payable request_id=%s status=%s", requestID, r.Status)
		return entities.QuotePayment{}, ErrRequestNotPayable
	}
	if !r.HasQuote() {
		return entities.QuotePayment{}, ErrRequestNotPayable
	}
	amount := *r.Quote

	// Mercado Pago uses external_reference to reconcile events; the amount
	// source of truth is the quote bound to the request.
	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err == nil {
		if _, ok := reqMap["external_reference"]; !ok {
			reqMap["external_reference"] = requestID
		}
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Serviço %s", requestID)
		}
		reqMap["transaction_amount"] = amount
		if b, err := json.Marshal(reqMap); err == nil {
			mpPayload = b
		}
	}

	providerPaymentID := ""
	providerResp := json.RawMessage(nil)

	if mockMode {
		providerPaymentID = strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		now := time.Now().UTC().Format(time.RFC3339Nano)
		mockResp := map[string]any{}
		_ = json.Unmarshal(mpPayload, &mockResp)
		mockResp["id"] = providerPaymentID
		mockResp["status"] = "approved"
		mockResp["status_detail"] = "accredited"
		mockResp["date_created"] = now
		mockResp["date_approved"] = now
		b, mErr := json.Marshal(mockResp)
		if mErr != nil {
			return entities.QuotePayment{}, mErr
		}
		providerResp = b
	} else {
		providerPaymentID, _, providerResp, err = u.gateway.CreatePayment(ctx, mpPayload)
		if err != nil {
			log.Printf("[payment][usecase] payment gateway failed request_id=%s err=%v", requestID, err)
			if isGatewayUnauthorized(err) {
				return entities.QuotePayment{}, ErrPaymentGatewayUnauthorized
			}
			if isGatewayBadRequest(err) {
				return entities.QuotePayment{}, ErrPaymentGatewayBadRequest
			}
			return entities.QuotePayment{}, err
		}
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed request_id=%s err=%v", requestID, err)
	}

	p := entities.QuotePayment{
		ID:           providerPaymentID,
		RequestID:    requestID,
		Amount:       amount,
		Date:         time.Now().UTC(),
		Status:       entities.PaymentStatusAprovado,
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed request_id=%s payment_id=%s err=%v", requestID, p.ID, err)
		return entities.QuotePayment{}, err
	}
	log.Printf("[payment][usecase] create-and-approve success request_id=%s payment_id=%s", requestID, created.ID)
	return created, nil
}

func (u *QuotePaymentUseCase) ListByRequestID(ctx context.Context, requestID string) ([]entities.QuotePayment, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}
	return u.repo.ListByRequestID(ctx, requestID)
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}
