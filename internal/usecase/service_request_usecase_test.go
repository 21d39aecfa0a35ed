package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/transition"
	mock_interfaces "github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func floatPtr(v float64) *float64 { return &v }

func validCreateInput() CreateRequestInput {
	return CreateRequestInput{
		ClientEmail: "cliente@example.com",
		ClientName:  "Cliente",
		Address:     "Rua A, 10",
		Contact:     "21 99999-0000",
		Category:    entities.CategoryEletrica,
		Description: "Trocar tomada da sala",
	}
}

func TestServiceRequestUseCase_Create(t *testing.T) {
	t.Run("missing required fields", func(t *testing.T) {
		uc := NewServiceRequestUseCase(nil, nil)
		for name, mutate := range map[string]func(*CreateRequestInput){
			"client email": func(in *CreateRequestInput) { in.ClientEmail = "  " },
			"category":     func(in *CreateRequestInput) { in.Category = "" },
			"description":  func(in *CreateRequestInput) { in.Description = "" },
			"address":      func(in *CreateRequestInput) { in.Address = "" },
		} {
			in := validCreateInput()
			mutate(&in)
			if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrMissingRequestFields) {
				t.Fatalf("%s: expected ErrMissingRequestFields, got %v", name, err)
			}
		}
	})

	t.Run("persists pending request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.ServiceRequest{})).DoAndReturn(
			func(_ context.Context, r entities.ServiceRequest) (entities.ServiceRequest, error) {
				if r.ID == "" {
					t.Fatalf("expected generated id")
				}
				if r.Status != entities.StatusPendente {
					t.Fatalf("expected Pendente, got %s", r.Status)
				}
				if r.Quote != nil || r.ProviderEmail != "" {
					t.Fatalf("new request must not carry quote fields: %+v", r)
				}
				if r.RequestDate.IsZero() {
					t.Fatalf("expected request date")
				}
				return r, nil
			},
		)

		res, err := uc.Create(context.Background(), validCreateInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ClientEmail != "cliente@example.com" {
			t.Fatalf("unexpected client email: %q", res.ClientEmail)
		}
	})
}

func TestServiceRequestUseCase_Transition(t *testing.T) {
	provider := transition.Actor{Role: transition.RoleProvider, Email: "prestador@example.com"}
	client := transition.Actor{Role: transition.RoleClient, Email: "cliente@example.com"}

	pending := entities.ServiceRequest{
		ID:          "req-1",
		ClientEmail: "cliente@example.com",
		Address:     "Rua A, 10",
		Category:    entities.CategoryEletrica,
		Description: "Trocar disjuntor",
		Status:      entities.StatusPendente,
	}

	t.Run("invalid id", func(t *testing.T) {
		uc := NewServiceRequestUseCase(nil, nil)
		_, err := uc.Transition(context.Background(), "  ", provider, entities.StatusOrcamentoEnviado, TransitionInput{Quote: floatPtr(150)})
		if !errors.Is(err, ErrInvalidRequestID) {
			t.Fatalf("expected ErrInvalidRequestID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.ServiceRequest{}, nil)

		_, err := uc.Transition(context.Background(), "missing", provider, entities.StatusOrcamentoEnviado, TransitionInput{Quote: floatPtr(150)})
		if !errors.Is(err, ErrRequestNotFound) {
			t.Fatalf("expected ErrRequestNotFound, got %v", err)
		}
	})

	t.Run("engine rejection propagates unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, nil)

		quoted := pending
		quoted.Status = entities.StatusOrcamentoEnviado
		quoted.Quote = floatPtr(150)
		quoted.ProviderEmail = "primeiro@example.com"
		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(quoted, nil)

		_, err := uc.Transition(context.Background(), "req-1", provider, entities.StatusOrcamentoEnviado, TransitionInput{Quote: floatPtr(200)})
		if !errors.Is(err, transition.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("quote binds provider and value", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(pending, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), "req-1", entities.StatusPendente, gomock.AssignableToTypeOf(transition.Patch{})).DoAndReturn(
			func(_ context.Context, _ string, _ entities.RequestStatus, patch transition.Patch) (entities.ServiceRequest, error) {
				if patch.Status != entities.StatusOrcamentoEnviado {
					t.Fatalf("unexpected patch status: %s", patch.Status)
				}
				if patch.Quote == nil || *patch.Quote != 150 {
					t.Fatalf("unexpected patch quote: %v", patch.Quote)
				}
				if patch.ProviderEmail != provider.Email {
					t.Fatalf("unexpected patch provider: %q", patch.ProviderEmail)
				}
				updated := pending
				updated.Status = patch.Status
				updated.Quote = patch.Quote
				updated.ProviderEmail = patch.ProviderEmail
				return updated, nil
			},
		)

		res, err := uc.Transition(context.Background(), "req-1", provider, entities.StatusOrcamentoEnviado, TransitionInput{Quote: floatPtr(150)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusOrcamentoEnviado || res.ProviderEmail != provider.Email {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("lost race resolves to invalid transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, nil)

		// First read sees Pendente; the conditional write loses; the re-read
		// sees the winner's state and the engine replay rejects.
		winner := pending
		winner.Status = entities.StatusOrcamentoEnviado
		winner.Quote = floatPtr(150)
		winner.ProviderEmail = "primeiro@example.com"

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(pending, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), "req-1", entities.StatusPendente, gomock.Any()).Return(entities.ServiceRequest{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(winner, nil)

		_, err := uc.Transition(context.Background(), "req-1", provider, entities.StatusOrcamentoEnviado, TransitionInput{Quote: floatPtr(200)})
		if !errors.Is(err, transition.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("acceptance seeds initial message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		messages := mock_interfaces.NewMockIMessageRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, messages)

		quoted := pending
		quoted.Status = entities.StatusOrcamentoEnviado
		quoted.Quote = floatPtr(150)
		quoted.ProviderEmail = "prestador@example.com"

		accepted := quoted
		accepted.Status = entities.StatusAceito

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(quoted, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), "req-1", entities.StatusOrcamentoEnviado, gomock.Any()).Return(accepted, nil)
		messages.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Message{})).DoAndReturn(
			func(_ context.Context, m entities.Message) (entities.Message, error) {
				if m.ServiceID != "req-1" {
					t.Fatalf("unexpected service id: %q", m.ServiceID)
				}
				if m.SenderEmail != "cliente@example.com" || m.RecipientEmail != "prestador@example.com" {
					t.Fatalf("unexpected participants: %+v", m)
				}
				if m.Content != "Pode vir amanhã de manhã?" {
					t.Fatalf("unexpected content: %q", m.Content)
				}
				return m, nil
			},
		)

		res, err := uc.Transition(context.Background(), "req-1", client, entities.StatusAceito, TransitionInput{InitialMessage: "Pode vir amanhã de manhã?"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusAceito {
			t.Fatalf("unexpected status: %s", res.Status)
		}
	})

	t.Run("message seeding failure does not fail transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		messages := mock_interfaces.NewMockIMessageRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, messages)

		quoted := pending
		quoted.Status = entities.StatusOrcamentoEnviado
		quoted.Quote = floatPtr(150)
		quoted.ProviderEmail = "prestador@example.com"

		accepted := quoted
		accepted.Status = entities.StatusAceito

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(quoted, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), "req-1", entities.StatusOrcamentoEnviado, gomock.Any()).Return(accepted, nil)
		messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Message{}, errors.New("db down"))

		res, err := uc.Transition(context.Background(), "req-1", client, entities.StatusAceito, TransitionInput{InitialMessage: "olá"})
		if err != nil {
			t.Fatalf("transition must not fail on message seeding: %v", err)
		}
		if res.Status != entities.StatusAceito {
			t.Fatalf("unexpected status: %s", res.Status)
		}
	})

	t.Run("acceptance without initial message seeds nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		messages := mock_interfaces.NewMockIMessageRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, messages)

		quoted := pending
		quoted.Status = entities.StatusOrcamentoEnviado
		quoted.Quote = floatPtr(150)
		quoted.ProviderEmail = "prestador@example.com"

		accepted := quoted
		accepted.Status = entities.StatusAceito

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(quoted, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), "req-1", entities.StatusOrcamentoEnviado, gomock.Any()).Return(accepted, nil)

		if _, err := uc.Transition(context.Background(), "req-1", client, entities.StatusAceito, TransitionInput{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("accept then finish", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, nil)

		accepted := pending
		accepted.Status = entities.StatusAceito
		accepted.Quote = floatPtr(150)
		accepted.ProviderEmail = "prestador@example.com"

		finished := accepted
		finished.Status = entities.StatusFinalizado

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(accepted, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), "req-1", entities.StatusAceito, gomock.Any()).Return(finished, nil)

		res, err := uc.Transition(context.Background(), "req-1", provider, entities.StatusFinalizado, TransitionInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.StatusFinalizado {
			t.Fatalf("unexpected status: %s", res.Status)
		}
	})
}

func TestServiceRequestUseCase_ListForActor(t *testing.T) {
	t.Run("client sees own requests", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, nil)

		repo.EXPECT().ListByClientEmail(gomock.Any(), "cliente@example.com").Return([]entities.ServiceRequest{{ID: "req-1"}}, nil)

		res, err := uc.ListForActor(context.Background(), transition.Actor{Role: transition.RoleClient, Email: "cliente@example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 1 || res[0].ID != "req-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("provider sees pending plus bound without duplicates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, nil)

		repo.EXPECT().ListPending(gomock.Any()).Return([]entities.ServiceRequest{{ID: "req-1"}, {ID: "req-2"}}, nil)
		repo.EXPECT().ListByProviderEmail(gomock.Any(), "prestador@example.com").Return([]entities.ServiceRequest{{ID: "req-2"}, {ID: "req-3"}}, nil)

		res, err := uc.ListForActor(context.Background(), transition.Actor{Role: transition.RoleProvider, Email: "prestador@example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 3 {
			t.Fatalf("expected 3 requests, got %d: %+v", len(res), res)
		}
	})
}

func TestServiceRequestUseCase_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.ServiceRequest{}, nil)

		if _, err := uc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrRequestNotFound) {
			t.Fatalf("expected ErrRequestNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRequestRepository(ctrl)
		uc := NewServiceRequestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(entities.ServiceRequest{ID: "req-1"}, nil)

		res, err := uc.GetByID(context.Background(), " req-1 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "req-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}
