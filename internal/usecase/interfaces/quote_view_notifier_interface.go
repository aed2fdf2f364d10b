package interfaces

import (
	"context"
	"time"

	"quoteflow/internal/domain/entities"
)

// IQuoteViewNotifier tells the detailer that a customer opened a quote for the
// first time. Implementations must return without waiting for delivery.
type IQuoteViewNotifier interface {
	NotifyQuoteViewed(ctx context.Context, quote entities.Quote, detailer entities.Detailer, viewedAt time.Time)
}
