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
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/middleware"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/transition"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestMessageHandler_SendMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	build := func(uc usecase.IMessageUseCase) *gin.Engine {
		h := NewMessageHandler(uc)
		r := gin.New()
		r.POST("/v1/requests/:id/messages", middleware.RequireActor(), h.SendMessage)
		return r
	}

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMessageUseCase(ctrl)
		r := build(uc)

		req := httptest.NewRequest(http.MethodPost, "/v1/requests/req-1/messages", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.HeaderUserEmail, "ana@x.com")
		req.Header.Set(middleware.HeaderUserRole, "client")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("actor not a participant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMessageUseCase(ctrl)
		r := build(uc)

		uc.EXPECT().
			Send(gomock.Any(), "req-1", transition.Actor{Role: transition.RoleClient, Email: "intruso@x.com"}, "oi").
			Return(entities.Message{}, usecase.ErrNotAParticipant)

		req := httptest.NewRequest(http.MethodPost, "/v1/requests/req-1/messages", bytes.NewBufferString(`{"content":"oi"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.HeaderUserEmail, "intruso@x.com")
		req.Header.Set(middleware.HeaderUserRole, "client")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMessageUseCase(ctrl)
		r := build(uc)

		uc.EXPECT().
			Send(gomock.Any(), "req-1", transition.Actor{Role: transition.RoleClient, Email: "ana@x.com"}, "oi").
			Return(entities.Message{
				ID:             "msg-1",
				ServiceID:      "req-1",
				SenderEmail:    "ana@x.com",
				RecipientEmail: "joao@x.com",
				Content:        "oi",
				CreatedAt:      time.Now().UTC(),
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/requests/req-1/messages", bytes.NewBufferString(`{"content":"oi"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.HeaderUserEmail, "ana@x.com")
		req.Header.Set(middleware.HeaderUserRole, "client")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["id"] != "msg-1" || resp["recipientEmail"] != "joao@x.com" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestMessageHandler_ListMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("request not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMessageUseCase(ctrl)
		h := NewMessageHandler(uc)

		r := gin.New()
		r.GET("/v1/requests/:id/messages", h.ListMessages)

		uc.EXPECT().ListByServiceID(gomock.Any(), "ghost").Return(nil, usecase.ErrRequestNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/requests/ghost/messages", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMessageUseCase(ctrl)
		h := NewMessageHandler(uc)

		r := gin.New()
		r.GET("/v1/requests/:id/messages", h.ListMessages)

		uc.EXPECT().ListByServiceID(gomock.Any(), "req-1").Return([]entities.Message{
			{ID: "msg-1", ServiceID: "req-1", Content: "oi"},
			{ID: "msg-2", ServiceID: "req-1", Content: "bom dia"},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/requests/req-1/messages", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if len(resp) != 2 {
			t.Fatalf("expected 2 messages, got %d: %s", len(resp), w.Body.String())
		}
	})
}

func TestMapMessageError(t *testing.T) {
	if got := mapMessageError(usecase.ErrEmptyMessage); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapMessageError(usecase.ErrNoCounterpart); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapMessageError(usecase.ErrNotAParticipant); got.HTTPStatus != http.StatusForbidden {
		t.Fatalf("expected 403")
	}
	if got := mapMessageError(usecase.ErrRequestNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapMessageError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
