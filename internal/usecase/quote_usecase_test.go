package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"
	mock_interfaces "quoteflow/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newTestQuoteUseCase(t *testing.T, now time.Time) (*QuoteUseCase, *mock_interfaces.MockIQuoteRepository) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
	uc := NewQuoteUseCase(repo)
	uc.now = func() time.Time { return now }
	return uc, repo
}

func TestNewPublicToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok, err := newPublicToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tok) != 12 {
			t.Fatalf("expected 12 chars, got %q", tok)
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}

func TestQuoteUseCase_Create(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	in := CreateQuoteInput{Title: " Full detail ", CustomerName: "Bo", Total: decimal.RequireFromString("249.90")}

	t.Run("creates draft with share link", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q entities.Quote) (entities.Quote, error) {
			if q.Status != entities.QuoteStatusDraft || q.DetailerID != "det-1" || q.Title != "Full detail" {
				t.Fatalf("unexpected quote %+v", q)
			}
			if len(q.ShareLink) != 12 || q.ID == "" {
				t.Fatalf("expected id and 12 char share link, got %+v", q)
			}
			if !q.Total.Equal(decimal.RequireFromString("249.9")) {
				t.Fatalf("unexpected total %s", q.Total)
			}
			return q, nil
		})

		got, err := uc.Create(context.Background(), "det-1", in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.CreatedAt.Equal(now) {
			t.Fatalf("expected created_at %v, got %v", now, got.CreatedAt)
		}
	})

	t.Run("retries share link collisions", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		tokens := []string{"aaaaaaaaaaaa", "bbbbbbbbbbbb"}
		uc.newToken = func() (string, error) {
			tok := tokens[0]
			tokens = tokens[1:]
			return tok, nil
		}
		gomock.InOrder(
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quote{}, interfaces.ErrDuplicateKey),
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				return q, nil
			}),
		)

		got, err := uc.Create(context.Background(), "det-1", in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ShareLink != "bbbbbbbbbbbb" {
			t.Fatalf("expected second token, got %q", got.ShareLink)
		}
	})

	t.Run("gives up after repeated collisions", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quote{}, interfaces.ErrDuplicateKey).Times(maxTokenAttempts)

		if _, err := uc.Create(context.Background(), "det-1", in); !errors.Is(err, ErrTokenExhausted) {
			t.Fatalf("expected ErrTokenExhausted, got %v", err)
		}
	})

	t.Run("validations", func(t *testing.T) {
		uc, _ := newTestQuoteUseCase(t, now)
		if _, err := uc.Create(context.Background(), "", in); !errors.Is(err, ErrMissingIdentity) {
			t.Fatalf("expected ErrMissingIdentity, got %v", err)
		}
		if _, err := uc.Create(context.Background(), "det-1", CreateQuoteInput{Total: decimal.NewFromInt(1)}); !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput for blank title, got %v", err)
		}
		if _, err := uc.Create(context.Background(), "det-1", CreateQuoteInput{Title: "x", Total: decimal.NewFromInt(-1)}); !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput for negative total, got %v", err)
		}
	})
}

func TestQuoteUseCase_Ownership(t *testing.T) {
	now := time.Now().UTC()

	t.Run("other detailer is forbidden", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", DetailerID: "det-2"}, nil)

		if _, err := uc.GetForOwner(context.Background(), "det-1", "q-1"); !errors.Is(err, ErrQuoteForbidden) {
			t.Fatalf("expected ErrQuoteForbidden, got %v", err)
		}
	})

	t.Run("missing quote", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		if _, err := uc.GetForOwner(context.Background(), "det-1", "q-1"); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("no identity", func(t *testing.T) {
		uc, _ := newTestQuoteUseCase(t, now)
		if _, err := uc.ListForOwner(context.Background(), ""); !errors.Is(err, ErrMissingIdentity) {
			t.Fatalf("expected ErrMissingIdentity, got %v", err)
		}
	})

	t.Run("list delegates to repository", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().ListByDetailerID(gomock.Any(), "det-1").Return([]entities.Quote{{ID: "q-1"}, {ID: "q-2"}}, nil)

		got, err := uc.ListForOwner(context.Background(), "det-1")
		if err != nil || len(got) != 2 {
			t.Fatalf("expected two quotes, got %v err=%v", got, err)
		}
	})
}

func TestQuoteUseCase_Send(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("draft becomes sent", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", DetailerID: "det-1", Status: entities.QuoteStatusDraft}, nil)
		repo.EXPECT().TransitionStatus(gomock.Any(), "q-1", []entities.QuoteStatus{entities.QuoteStatusDraft}, entities.QuoteStatusSent, now).
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusSent, SentAt: &now}, nil)

		got, err := uc.Send(context.Background(), "det-1", "q-1")
		if err != nil || got.Status != entities.QuoteStatusSent {
			t.Fatalf("expected sent quote, got %+v err=%v", got, err)
		}
	})

	t.Run("already sent is a no-op", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", DetailerID: "det-1", Status: entities.QuoteStatusSent}, nil)
		repo.EXPECT().TransitionStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		if _, err := uc.Send(context.Background(), "det-1", "q-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("approved cannot be resent", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", DetailerID: "det-1", Status: entities.QuoteStatusApproved}, nil)

		if _, err := uc.Send(context.Background(), "det-1", "q-1"); !errors.Is(err, ErrQuoteNotSendable) {
			t.Fatalf("expected ErrQuoteNotSendable, got %v", err)
		}
	})
}

func TestQuoteUseCase_ApproveByShareLink(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	from := []entities.QuoteStatus{entities.QuoteStatusSent, entities.QuoteStatusViewed}

	t.Run("viewed quote is approved", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().GetByShareLink(gomock.Any(), "abc").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusViewed}, nil)
		repo.EXPECT().TransitionStatus(gomock.Any(), "q-1", from, entities.QuoteStatusApproved, now).
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved, ApprovedAt: &now}, nil)

		got, err := uc.ApproveByShareLink(context.Background(), "abc")
		if err != nil || got.Status != entities.QuoteStatusApproved {
			t.Fatalf("expected approved, got %+v err=%v", got, err)
		}
	})

	t.Run("already approved is idempotent", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().GetByShareLink(gomock.Any(), "abc").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)

		if _, err := uc.ApproveByShareLink(context.Background(), "abc"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("concurrent approval is idempotent", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().GetByShareLink(gomock.Any(), "abc").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusSent}, nil)
		repo.EXPECT().TransitionStatus(gomock.Any(), "q-1", from, entities.QuoteStatusApproved, now).Return(entities.Quote{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)

		got, err := uc.ApproveByShareLink(context.Background(), "abc")
		if err != nil || got.Status != entities.QuoteStatusApproved {
			t.Fatalf("expected approved, got %+v err=%v", got, err)
		}
	})

	t.Run("draft and paid are rejected", func(t *testing.T) {
		for _, status := range []entities.QuoteStatus{entities.QuoteStatusDraft, entities.QuoteStatusPaid} {
			uc, repo := newTestQuoteUseCase(t, now)
			repo.EXPECT().GetByShareLink(gomock.Any(), "abc").Return(entities.Quote{ID: "q-1", Status: status}, nil)

			if _, err := uc.ApproveByShareLink(context.Background(), "abc"); !errors.Is(err, ErrQuoteNotApprovable) {
				t.Fatalf("status %s: expected ErrQuoteNotApprovable, got %v", status, err)
			}
		}
	})

	t.Run("unknown link", func(t *testing.T) {
		uc, repo := newTestQuoteUseCase(t, now)
		repo.EXPECT().GetByShareLink(gomock.Any(), "abc").Return(entities.Quote{}, nil)

		if _, err := uc.ApproveByShareLink(context.Background(), "abc"); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})
}
