package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

var (
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrDetailerNotFound = errors.New("detailer not found")
)

// QuoteViewResult is what a customer sees when opening a share link.
type QuoteViewResult struct {
	Quote       entities.Quote
	Detailer    entities.Detailer
	IsFirstView bool
}

// IQuoteViewUseCase tracks customer reads of a quote share link.
//
// Behavior:
//   - approved/paid quotes are returned untouched and never notify.
//   - every other read bumps the view counters; the first one notifies the detailer.
type IQuoteViewUseCase interface {
	RecordView(ctx context.Context, shareLink, viewerIP, viewerDevice string, now time.Time) (QuoteViewResult, error)
}

type QuoteViewUseCase struct {
	quotes    interfaces.IQuoteRepository
	detailers interfaces.IDetailerRepository
	notifier  interfaces.IQuoteViewNotifier
}

var _ IQuoteViewUseCase = (*QuoteViewUseCase)(nil)

func NewQuoteViewUseCase(quotes interfaces.IQuoteRepository, detailers interfaces.IDetailerRepository, notifier interfaces.IQuoteViewNotifier) *QuoteViewUseCase {
	return &QuoteViewUseCase{quotes: quotes, detailers: detailers, notifier: notifier}
}

func (u *QuoteViewUseCase) RecordView(ctx context.Context, shareLink, viewerIP, viewerDevice string, now time.Time) (QuoteViewResult, error) {
	shareLink = strings.TrimSpace(shareLink)
	if shareLink == "" {
		return QuoteViewResult{}, ErrQuoteNotFound
	}

	q, err := u.quotes.GetByShareLink(ctx, shareLink)
	if err != nil {
		log.Error().Err(err).Str("share_link", shareLink).Msg("[quote][view] lookup failed")
		return QuoteViewResult{}, err
	}
	if q.ID == "" {
		return QuoteViewResult{}, ErrQuoteNotFound
	}

	// The detailer is loaded before any write so a failed join leaves the quote untouched.
	d, err := u.detailers.GetByID(ctx, q.DetailerID)
	if err != nil {
		log.Error().Err(err).Str("quote_id", q.ID).Str("detailer_id", q.DetailerID).Msg("[quote][view] detailer lookup failed")
		return QuoteViewResult{}, err
	}
	if d.ID == "" {
		log.Error().Str("quote_id", q.ID).Str("detailer_id", q.DetailerID).Msg("[quote][view] quote references a missing detailer")
		return QuoteViewResult{}, ErrDetailerNotFound
	}

	if q.Status.FreezesViewTracking() {
		log.Debug().Str("quote_id", q.ID).Str("status", string(q.Status)).Msg("[quote][view] tracking frozen")
		return QuoteViewResult{Quote: q, Detailer: d}, nil
	}

	res, err := u.quotes.RecordView(ctx, q.ID, entities.QuoteView{At: now, IP: viewerIP, Device: viewerDevice})
	if err != nil {
		log.Error().Err(err).Str("quote_id", q.ID).Msg("[quote][view] record view failed")
		return QuoteViewResult{}, err
	}
	if !res.Applied {
		// An approval or payment landed between the read and the write.
		current, err := u.quotes.GetByID(ctx, q.ID)
		if err != nil {
			return QuoteViewResult{}, err
		}
		if current.ID == "" {
			return QuoteViewResult{}, ErrQuoteNotFound
		}
		return QuoteViewResult{Quote: current, Detailer: d}, nil
	}

	if res.FirstView {
		log.Info().Str("quote_id", q.ID).Str("detailer_id", d.ID).Msg("[quote][view] first view recorded")
		if u.notifier != nil {
			u.notifier.NotifyQuoteViewed(ctx, res.Quote, d, now)
		}
	}

	return QuoteViewResult{
		Quote:       withDisplayCounters(res.Quote, now),
		Detailer:    d,
		IsFirstView: res.FirstView,
	}, nil
}

// withDisplayCounters derives the counters shown to the viewer: the persisted
// count after this view plus one, and now as the last view.
//
// The extra one is inherited behavior that clients already depend on. It is a
// suspected off-by-one awaiting product confirmation; do not drop it silently.
func withDisplayCounters(q entities.Quote, now time.Time) entities.Quote {
	q.ViewCount++
	lastViewed := now
	q.LastViewedAt = &lastViewed
	return q
}
