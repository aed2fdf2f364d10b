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
	ErrMissingIdentity    = errors.New("missing caller identity")
	ErrInvalidQuoteID     = errors.New("invalid quote id")
	ErrInvalidQuoteInput  = errors.New("invalid quote input")
	ErrQuoteForbidden     = errors.New("quote belongs to another detailer")
	ErrQuoteNotSendable   = errors.New("quote is not a draft")
	ErrQuoteNotApprovable = errors.New("quote cannot be approved in its current status")
)

// CreateQuoteInput carries the owner-provided fields of a new quote. Pricing
// is computed upstream; Total is taken as given.
type CreateQuoteInput struct {
	Title         string
	CustomerName  string
	CustomerEmail string
	Total         decimal.Decimal
}

// IQuoteUseCase covers the owner-facing quote lifecycle and the customer's
// approval through the share link.
type IQuoteUseCase interface {
	Create(ctx context.Context, detailerID string, in CreateQuoteInput) (entities.Quote, error)
	GetForOwner(ctx context.Context, detailerID, quoteID string) (entities.Quote, error)
	ListForOwner(ctx context.Context, detailerID string) ([]entities.Quote, error)
	Send(ctx context.Context, detailerID, quoteID string) (entities.Quote, error)
	ApproveByShareLink(ctx context.Context, shareLink string) (entities.Quote, error)
}

type QuoteUseCase struct {
	repo     interfaces.IQuoteRepository
	newToken func() (string, error)
	now      func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, newToken: newPublicToken, now: time.Now}
}

func (u *QuoteUseCase) Create(ctx context.Context, detailerID string, in CreateQuoteInput) (entities.Quote, error) {
	detailerID = strings.TrimSpace(detailerID)
	if detailerID == "" {
		return entities.Quote{}, ErrMissingIdentity
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.Total.IsNegative() {
		return entities.Quote{}, ErrInvalidQuoteInput
	}

	now := u.now().UTC()
	q := entities.Quote{
		ID:            uuid.NewString(),
		DetailerID:    detailerID,
		Title:         in.Title,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		Total:         in.Total,
		Status:        entities.QuoteStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		link, err := u.newToken()
		if err != nil {
			return entities.Quote{}, err
		}
		q.ShareLink = link

		created, err := u.repo.Create(ctx, q)
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			log.Warn().Int("attempt", attempt).Str("quote_id", q.ID).Msg("[quote][usecase] share link collision")
			continue
		}
		if err != nil {
			log.Error().Err(err).Str("quote_id", q.ID).Msg("[quote][usecase] create failed")
			return entities.Quote{}, err
		}
		log.Info().Str("quote_id", created.ID).Str("detailer_id", detailerID).Msg("[quote][usecase] created")
		return created, nil
	}
	return entities.Quote{}, ErrTokenExhausted
}

func (u *QuoteUseCase) GetForOwner(ctx context.Context, detailerID, quoteID string) (entities.Quote, error) {
	return ownedQuote(ctx, u.repo, detailerID, quoteID)
}

func (u *QuoteUseCase) ListForOwner(ctx context.Context, detailerID string) ([]entities.Quote, error) {
	detailerID = strings.TrimSpace(detailerID)
	if detailerID == "" {
		return nil, ErrMissingIdentity
	}
	return u.repo.ListByDetailerID(ctx, detailerID)
}

// Send marks a draft as shared with the customer. Sending an already sent
// quote is a no-op.
func (u *QuoteUseCase) Send(ctx context.Context, detailerID, quoteID string) (entities.Quote, error) {
	q, err := ownedQuote(ctx, u.repo, detailerID, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.Status == entities.QuoteStatusSent {
		return q, nil
	}
	if q.Status != entities.QuoteStatusDraft {
		return entities.Quote{}, ErrQuoteNotSendable
	}

	sent, err := u.repo.TransitionStatus(ctx, q.ID, []entities.QuoteStatus{entities.QuoteStatusDraft}, entities.QuoteStatusSent, u.now().UTC())
	if err != nil {
		return entities.Quote{}, err
	}
	if sent.ID == "" {
		return entities.Quote{}, ErrQuoteNotSendable
	}
	log.Info().Str("quote_id", q.ID).Msg("[quote][usecase] sent")
	return sent, nil
}

// ApproveByShareLink records the customer's acceptance. Once approved, reads
// of the share link stop touching view metadata.
func (u *QuoteUseCase) ApproveByShareLink(ctx context.Context, shareLink string) (entities.Quote, error) {
	shareLink = strings.TrimSpace(shareLink)
	if shareLink == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	q, err := u.repo.GetByShareLink(ctx, shareLink)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.Status == entities.QuoteStatusApproved {
		return q, nil
	}
	if !q.Status.Approvable() {
		return entities.Quote{}, ErrQuoteNotApprovable
	}

	from := []entities.QuoteStatus{entities.QuoteStatusSent, entities.QuoteStatusViewed}
	approved, err := u.repo.TransitionStatus(ctx, q.ID, from, entities.QuoteStatusApproved, u.now().UTC())
	if err != nil {
		log.Error().Err(err).Str("quote_id", q.ID).Msg("[quote][usecase] approve failed")
		return entities.Quote{}, err
	}
	if approved.ID == "" {
		current, err := u.repo.GetByID(ctx, q.ID)
		if err != nil {
			return entities.Quote{}, err
		}
		if current.Status == entities.QuoteStatusApproved {
			return current, nil
		}
		return entities.Quote{}, ErrQuoteNotApprovable
	}
	log.Info().Str("quote_id", q.ID).Msg("[quote][usecase] approved by customer")
	return approved, nil
}

// ownedQuote loads a quote and checks that detailerID owns it.
func ownedQuote(ctx context.Context, repo interfaces.IQuoteRepository, detailerID, quoteID string) (entities.Quote, error) {
	detailerID = strings.TrimSpace(detailerID)
	if detailerID == "" {
		return entities.Quote{}, ErrMissingIdentity
	}
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := repo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.DetailerID != detailerID {
		log.Warn().Str("quote_id", quoteID).Str("detailer_id", detailerID).Msg("[quote][usecase] ownership mismatch")
		return entities.Quote{}, ErrQuoteForbidden
	}
	return q, nil
}
