package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrChangeOrderNotFound       = errors.New("change order not found")
	ErrInvalidChangeOrderInput   = errors.New("invalid change order input")
	ErrChangeOrderAlreadyDecided = errors.New("change order already decided")
	ErrQuoteNotAmendable         = errors.New("quote can no longer be amended")
)

type CreateChangeOrderInput struct {
	Amount decimal.Decimal
	Reason string
}

// ChangeOrderView is the customer-facing read of a change order, joined with
// the quote it amends.
type ChangeOrderView struct {
	ChangeOrder entities.ChangeOrder
	Quote       entities.Quote
}

// IChangeOrderUseCase manages post-share amendments to a quote.
//
// Customers reach a change order through its approval token only. Deciding
// twice with the same answer returns the stored record.
type IChangeOrderUseCase interface {
	Create(ctx context.Context, detailerID, quoteID string, in CreateChangeOrderInput) (entities.ChangeOrder, error)
	ListForOwner(ctx context.Context, detailerID, quoteID string) ([]entities.ChangeOrder, error)
	GetByApprovalToken(ctx context.Context, token string) (ChangeOrderView, error)
	Approve(ctx context.Context, token string) (entities.ChangeOrder, error)
	Decline(ctx context.Context, token string) (entities.ChangeOrder, error)
}

type ChangeOrderUseCase struct {
	repo      interfaces.IChangeOrderRepository
	quoteRepo interfaces.IQuoteRepository
	newToken  func() (string, error)
	now       func() time.Time
}

var _ IChangeOrderUseCase = (*ChangeOrderUseCase)(nil)

func NewChangeOrderUseCase(repo interfaces.IChangeOrderRepository, quoteRepo interfaces.IQuoteRepository) *ChangeOrderUseCase {
	return &ChangeOrderUseCase{repo: repo, quoteRepo: quoteRepo, newToken: newPublicToken, now: time.Now}
}

func (u *ChangeOrderUseCase) Create(ctx context.Context, detailerID, quoteID string, in CreateChangeOrderInput) (entities.ChangeOrder, error) {
	q, err := ownedQuote(ctx, u.quoteRepo, detailerID, quoteID)
	if err != nil {
		return entities.ChangeOrder{}, err
	}
	in.Reason = strings.TrimSpace(in.Reason)
	if in.Reason == "" || in.Amount.IsZero() {
		return entities.ChangeOrder{}, ErrInvalidChangeOrderInput
	}
	if q.Status == entities.QuoteStatusDraft || q.Status == entities.QuoteStatusPaid {
		return entities.ChangeOrder{}, ErrQuoteNotAmendable
	}

	now := u.now().UTC()
	co := entities.ChangeOrder{
		ID:        uuid.NewString(),
		QuoteID:   q.ID,
		Status:    entities.ChangeOrderStatusPending,
		Amount:    in.Amount,
		Reason:    in.Reason,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token, err := u.newToken()
		if err != nil {
			return entities.ChangeOrder{}, err
		}
		co.ApprovalToken = token

		created, err := u.repo.Create(ctx, co)
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			log.Warn().Int("attempt", attempt).Str("change_order_id", co.ID).Msg("[change-order][usecase] approval token collision")
			continue
		}
		if err != nil {
			return entities.ChangeOrder{}, err
		}
		log.Info().Str("change_order_id", created.ID).Str("quote_id", q.ID).Msg("[change-order][usecase] created")
		return created, nil
	}
	return entities.ChangeOrder{}, ErrTokenExhausted
}

func (u *ChangeOrderUseCase) ListForOwner(ctx context.Context, detailerID, quoteID string) ([]entities.ChangeOrder, error) {
	q, err := ownedQuote(ctx, u.quoteRepo, detailerID, quoteID)
	if err != nil {
		return nil, err
	}
	return u.repo.ListByQuoteID(ctx, q.ID)
}

func (u *ChangeOrderUseCase) GetByApprovalToken(ctx context.Context, token string) (ChangeOrderView, error) {
	co, err := u.byToken(ctx, token)
	if err != nil {
		return ChangeOrderView{}, err
	}
	q, err := u.quoteRepo.GetByID(ctx, co.QuoteID)
	if err != nil {
		return ChangeOrderView{}, err
	}
	if q.ID == "" {
		return ChangeOrderView{}, ErrQuoteNotFound
	}
	return ChangeOrderView{ChangeOrder: co, Quote: q}, nil
}

func (u *ChangeOrderUseCase) Approve(ctx context.Context, token string) (entities.ChangeOrder, error) {
	return u.decide(ctx, token, entities.ChangeOrderStatusApproved)
}

func (u *ChangeOrderUseCase) Decline(ctx context.Context, token string) (entities.ChangeOrder, error) {
	return u.decide(ctx, token, entities.ChangeOrderStatusDeclined)
}

func (u *ChangeOrderUseCase) decide(ctx context.Context, token string, status entities.ChangeOrderStatus) (entities.ChangeOrder, error) {
	co, err := u.byToken(ctx, token)
	if err != nil {
		return entities.ChangeOrder{}, err
	}
	if co.Status != entities.ChangeOrderStatusPending {
		return settledDecision(co, status)
	}

	decided, err := u.repo.Decide(ctx, co.ID, status, u.now().UTC())
	if err != nil {
		log.Error().Err(err).Str("change_order_id", co.ID).Msg("[change-order][usecase] decide failed")
		return entities.ChangeOrder{}, err
	}
	if decided.ID == "" {
		// Lost a race with another decision; report what won.
		current, err := u.byToken(ctx, token)
		if err != nil {
			return entities.ChangeOrder{}, err
		}
		return settledDecision(current, status)
	}
	log.Info().Str("change_order_id", co.ID).Str("status", string(status)).Msg("[change-order][usecase] decided")
	return decided, nil
}

func settledDecision(co entities.ChangeOrder, want entities.ChangeOrderStatus) (entities.ChangeOrder, error) {
	if co.Status == want {
		return co, nil
	}
	return entities.ChangeOrder{}, ErrChangeOrderAlreadyDecided
}

func (u *ChangeOrderUseCase) byToken(ctx context.Context, token string) (entities.ChangeOrder, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.ChangeOrder{}, ErrChangeOrderNotFound
	}
	co, err := u.repo.GetByApprovalToken(ctx, token)
	if err != nil {
		return entities.ChangeOrder{}, err
	}
	if co.ID == "" {
		return entities.ChangeOrder{}, ErrChangeOrderNotFound
	}
	return co, nil
}
