package interfaces

import (
	"context"
	"time"

	"quoteflow/internal/domain/entities"
)

// IChangeOrderRepository abstracts persistence for ChangeOrder.

type IChangeOrderRepository interface {
	Create(ctx context.Context, co entities.ChangeOrder) (entities.ChangeOrder, error)
	GetByApprovalToken(ctx context.Context, token string) (entities.ChangeOrder, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.ChangeOrder, error)

	// Decide moves a pending change order to status. It returns the zero
	// ChangeOrder when the change order is no longer pending.
	Decide(ctx context.Context, id string, status entities.ChangeOrderStatus, at time.Time) (entities.ChangeOrder, error)
}
