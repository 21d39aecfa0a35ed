package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/handlers/mocks"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestQuotePaymentHandler_CreatePaymentByRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotePaymentUseCase(ctrl)
		h := NewQuotePaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:request_id", h.CreatePaymentByRequestID)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/req-1", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("request not payable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotePaymentUseCase(ctrl)
		h := NewQuotePaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:request_id", h.CreatePaymentByRequestID)

		uc.EXPECT().CreateAndApprove(gomock.Any(), "req-1", gomock.Any()).
			Return(entities.QuotePayment{}, usecase.ErrRequestNotPayable)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/req-1", bytes.NewBufferString(`{"payment_method_id":"pix"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("unwraps mp_payload envelope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotePaymentUseCase(ctrl)
		h := NewQuotePaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:request_id", h.CreatePaymentByRequestID)

		uc.EXPECT().CreateAndApprove(gomock.Any(), "req-1", gomock.Any()).
			DoAndReturn(func(_ any, _ string, payload json.RawMessage) (entities.QuotePayment, error) {
				var m map[string]any
				if err := json.Unmarshal(payload, &m); err != nil {
					t.Fatalf("payload is not valid json: %v", err)
				}
				if m["payment_method_id"] != "pix" {
					t.Fatalf("envelope was not unwrapped: %s", string(payload))
				}
				return entities.QuotePayment{ID: "pay-1", RequestID: "req-1", Amount: 150, Status: entities.PaymentStatusAprovado, Date: time.Now().UTC()}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/req-1", bytes.NewBufferString(`{"mp_payload":{"payment_method_id":"pix"}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["id"] != "pay-1" || resp["status"] != "aprovado" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestQuotePaymentHandler_GetPaymentByRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("no payments yet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotePaymentUseCase(ctrl)
		h := NewQuotePaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments/:request_id", h.GetPaymentByRequestID)

		uc.EXPECT().ListByRequestID(gomock.Any(), "req-1").Return([]entities.QuotePayment{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/req-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("returns latest payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotePaymentUseCase(ctrl)
		h := NewQuotePaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments/:request_id", h.GetPaymentByRequestID)

		older := time.Now().UTC().Add(-time.Hour)
		newer := time.Now().UTC()
		uc.EXPECT().ListByRequestID(gomock.Any(), "req-1").Return([]entities.QuotePayment{
			{ID: "pay-1", RequestID: "req-1", Date: older},
			{ID: "pay-2", RequestID: "req-1", Date: newer},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/req-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["id"] != "pay-2" {
			t.Fatalf("expected latest payment pay-2, got %s", w.Body.String())
		}
	})
}

func TestMapQuotePaymentError(t *testing.T) {
	if got := mapQuotePaymentError(usecase.ErrInvalidMPPayload); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapQuotePaymentError(usecase.ErrPaymentGatewayBadRequest); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapQuotePaymentError(usecase.ErrPaymentGatewayUnauthorized); got.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("expected 401")
	}
	if got := mapQuotePaymentError(usecase.ErrRequestNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapQuotePaymentError(usecase.ErrRequestNotPayable); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapQuotePaymentError(usecase.ErrQuotePaymentNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapQuotePaymentError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
