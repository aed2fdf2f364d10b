package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"quoteflow/internal/domain/entities"
	mock_interfaces "quoteflow/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newTestChangeOrderUseCase(t *testing.T, now time.Time) (*ChangeOrderUseCase, *mock_interfaces.MockIChangeOrderRepository, *mock_interfaces.MockIQuoteRepository) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIChangeOrderRepository(ctrl)
	quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
	uc := NewChangeOrderUseCase(repo, quotes)
	uc.now = func() time.Time { return now }
	return uc, repo, quotes
}

func TestChangeOrderUseCase_Create(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	in := CreateChangeOrderInput{Amount: decimal.RequireFromString("35.00"), Reason: "Extra clay bar"}

	t.Run("creates pending change order", func(t *testing.T) {
		uc, repo, quotes := newTestChangeOrderUseCase(t, now)
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", DetailerID: "det-1", Status: entities.QuoteStatusViewed}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, co entities.ChangeOrder) (entities.ChangeOrder, error) {
			if co.Status != entities.ChangeOrderStatusPending || co.QuoteID != "q-1" || len(co.ApprovalToken) != 12 {
				t.Fatalf("unexpected change order %+v", co)
			}
			return co, nil
		})

		if _, err := uc.Create(context.Background(), "det-1", "q-1", in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("paid quote cannot be amended", func(t *testing.T) {
		uc, _, quotes := newTestChangeOrderUseCase(t, now)
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", DetailerID: "det-1", Status: entities.QuoteStatusPaid}, nil)

		if _, err := uc.Create(context.Background(), "det-1", "q-1", in); !errors.Is(err, ErrQuoteNotAmendable) {
			t.Fatalf("expected ErrQuoteNotAmendable, got %v", err)
		}
	})

	t.Run("blank reason", func(t *testing.T) {
		uc, _, quotes := newTestChangeOrderUseCase(t, now)
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", DetailerID: "det-1", Status: entities.QuoteStatusSent}, nil)

		if _, err := uc.Create(context.Background(), "det-1", "q-1", CreateChangeOrderInput{Amount: decimal.NewFromInt(5)}); !errors.Is(err, ErrInvalidChangeOrderInput) {
			t.Fatalf("expected ErrInvalidChangeOrderInput, got %v", err)
		}
	})

	t.Run("other owner", func(t *testing.T) {
		uc, _, quotes := newTestChangeOrderUseCase(t, now)
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", DetailerID: "det-2"}, nil)

		if _, err := uc.Create(context.Background(), "det-1", "q-1", in); !errors.Is(err, ErrQuoteForbidden) {
			t.Fatalf("expected ErrQuoteForbidden, got %v", err)
		}
	})
}

func TestChangeOrderUseCase_GetByApprovalToken(t *testing.T) {
	now := time.Now().UTC()

	t.Run("joins the quote", func(t *testing.T) {
		uc, repo, quotes := newTestChangeOrderUseCase(t, now)
		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok").Return(entities.ChangeOrder{ID: "co-1", QuoteID: "q-1"}, nil)
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Title: "Detail"}, nil)

		got, err := uc.GetByApprovalToken(context.Background(), "tok")
		if err != nil || got.Quote.Title != "Detail" || got.ChangeOrder.ID != "co-1" {
			t.Fatalf("unexpected view %+v err=%v", got, err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		uc, repo, _ := newTestChangeOrderUseCase(t, now)
		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok").Return(entities.ChangeOrder{}, nil)

		if _, err := uc.GetByApprovalToken(context.Background(), "tok"); !errors.Is(err, ErrChangeOrderNotFound) {
			t.Fatalf("expected ErrChangeOrderNotFound, got %v", err)
		}
	})
}

func TestChangeOrderUseCase_Decide(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	pending := entities.ChangeOrder{ID: "co-1", ApprovalToken: "tok", Status: entities.ChangeOrderStatusPending}

	t.Run("approve pending", func(t *testing.T) {
		uc, repo, _ := newTestChangeOrderUseCase(t, now)
		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok").Return(pending, nil)
		repo.EXPECT().Decide(gomock.Any(), "co-1", entities.ChangeOrderStatusApproved, now).
			Return(entities.ChangeOrder{ID: "co-1", Status: entities.ChangeOrderStatusApproved, DecidedAt: &now}, nil)

		got, err := uc.Approve(context.Background(), "tok")
		if err != nil || got.Status != entities.ChangeOrderStatusApproved {
			t.Fatalf("expected approved, got %+v err=%v", got, err)
		}
	})

	t.Run("repeat approve is idempotent", func(t *testing.T) {
		uc, repo, _ := newTestChangeOrderUseCase(t, now)
		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok").Return(entities.ChangeOrder{ID: "co-1", Status: entities.ChangeOrderStatusApproved}, nil)
		repo.EXPECT().Decide(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		if _, err := uc.Approve(context.Background(), "tok"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("decline after approve conflicts", func(t *testing.T) {
		uc, repo, _ := newTestChangeOrderUseCase(t, now)
		repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok").Return(entities.ChangeOrder{ID: "co-1", Status: entities.ChangeOrderStatusApproved}, nil)

		if _, err := uc.Decline(context.Background(), "tok"); !errors.Is(err, ErrChangeOrderAlreadyDecided) {
			t.Fatalf("expected ErrChangeOrderAlreadyDecided, got %v", err)
		}
	})

	t.Run("lost race reports winner", func(t *testing.T) {
		uc, repo, _ := newTestChangeOrderUseCase(t, now)
		gomock.InOrder(
			repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok").Return(pending, nil),
			repo.EXPECT().Decide(gomock.Any(), "co-1", entities.ChangeOrderStatusDeclined, now).Return(entities.ChangeOrder{}, nil),
			repo.EXPECT().GetByApprovalToken(gomock.Any(), "tok").Return(entities.ChangeOrder{ID: "co-1", Status: entities.ChangeOrderStatusDeclined}, nil),
		)

		got, err := uc.Decline(context.Background(), "tok")
		if err != nil || got.Status != entities.ChangeOrderStatusDeclined {
			t.Fatalf("expected declined, got %+v err=%v", got, err)
		}
	})
}
