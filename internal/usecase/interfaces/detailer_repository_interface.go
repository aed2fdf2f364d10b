package interfaces

import (
	"context"
	"time"

	"quoteflow/internal/domain/entities"
)

// IDetailerRepository abstracts persistence for Detailer.

type IDetailerRepository interface {
	GetByID(ctx context.Context, id string) (entities.Detailer, error)

	// SaveExternalAccount overwrites the linked payment-processor account.
	// It returns the zero Detailer when the detailer does not exist.
	SaveExternalAccount(ctx context.Context, detailerID, accountID string, linkedAt time.Time) (entities.Detailer, error)
}
