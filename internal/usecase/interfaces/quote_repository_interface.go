package interfaces

import (
	"context"
	"errors"
	"time"

	"quoteflow/internal/domain/entities"
)

// ErrDuplicateKey is returned by Create methods when a unique public token
// (share link, approval token) or id is already taken.
var ErrDuplicateKey = errors.New("duplicate key")

// RecordViewResult is the outcome of an atomic view write.
//
// Applied is false when the quote was approved or paid (or removed) by the time
// the write ran; Quote is then the zero value.
type RecordViewResult struct {
	Quote     entities.Quote
	FirstView bool
	Applied   bool
}

// IQuoteRepository abstracts persistence for Quote.
//
// Lookups return the zero Quote (ID == "") when nothing matches.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	GetByShareLink(ctx context.Context, shareLink string) (entities.Quote, error)
	ListByDetailerID(ctx context.Context, detailerID string) ([]entities.Quote, error)

	// RecordView applies one view as a single conditional write: status=viewed,
	// view_count+1, last-seen viewer fields, and viewed_at only when absent.
	// FirstView is true for exactly one caller per quote.
	RecordView(ctx context.Context, id string, view entities.QuoteView) (RecordViewResult, error)

	// TransitionStatus moves the quote to `to` only if its current status is one
	// of `from`. It returns the zero Quote when the condition does not hold.
	TransitionStatus(ctx context.Context, id string, from []entities.QuoteStatus, to entities.QuoteStatus, at time.Time) (entities.Quote, error)
}
