package repository

import (
	"context"
	"fmt"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/infrastructure/config"
	"quoteflow/internal/infrastructure/database"
	"quoteflow/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

const (
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Repositories groups the persistence ports of one storage backend.
type Repositories struct {
	Quotes       interfaces.IQuoteRepository
	ChangeOrders interfaces.IChangeOrderRepository
	Detailers    interfaces.IDetailerRepository
	Payments     interfaces.IBillingPaymentRepository

	closeFn func() error
}

// Close releases backend resources. It is safe on every backend.
func (r Repositories) Close() error {
	if r.closeFn == nil {
		return nil
	}
	return r.closeFn()
}

// Open builds the repositories for cfg.StorageBackend.
func Open(ctx context.Context, cfg config.Config) (Repositories, error) {
	switch cfg.StorageBackend {
	case BackendDynamoDB, "":
		client, err := database.ConnectDynamoDB(ctx, cfg.Dynamo)
		if err != nil {
			return Repositories{}, err
		}
		return Repositories{
			Quotes:       NewQuoteDynamoRepository(client, cfg.Dynamo.QuotesTable),
			ChangeOrders: NewChangeOrderDynamoRepository(client, cfg.Dynamo.ChangeOrdersTable),
			Detailers:    NewDetailerDynamoRepository(client, cfg.Dynamo.DetailersTable),
			Payments:     NewBillingPaymentDynamoRepository(client, cfg.Dynamo.PaymentsTable),
		}, nil

	case BackendPostgres:
		db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return Repositories{}, err
		}
		if err := database.ApplyMigrations(ctx, db); err != nil {
			_ = db.Close()
			return Repositories{}, err
		}
		detailers := NewDetailerPostgresRepository(db)
		if d, ok := devDetailer(cfg.DevDetailer); ok {
			if err := detailers.Upsert(ctx, d); err != nil {
				_ = db.Close()
				return Repositories{}, err
			}
			log.Info().Str("detailer_id", d.ID).Msg("[storage][postgres] dev detailer seeded")
		}
		return Repositories{
			Quotes:       NewQuotePostgresRepository(db),
			ChangeOrders: NewChangeOrderPostgresRepository(db),
			Detailers:    detailers,
			Payments:     NewBillingPaymentPostgresRepository(db),
			closeFn:      db.Close,
		}, nil

	case BackendMemory:
		store := NewMemoryStore()
		if d, ok := devDetailer(cfg.DevDetailer); ok {
			store.Detailers.Seed(d)
			log.Info().Str("detailer_id", d.ID).Msg("[storage][memory] dev detailer seeded")
		}
		log.Warn().Msg("[storage][memory] data is not persisted across restarts")
		return Repositories{
			Quotes:       store.Quotes,
			ChangeOrders: store.ChangeOrders,
			Detailers:    store.Detailers,
			Payments:     store.Payments,
		}, nil
	}
	return Repositories{}, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

func devDetailer(cfg config.DevDetailerConfig) (entities.Detailer, bool) {
	if cfg.ID == "" {
		return entities.Detailer{}, false
	}
	now := time.Now().UTC()
	return entities.Detailer{
		ID:        cfg.ID,
		Name:      cfg.Name,
		Email:     cfg.Email,
		FCMToken:  cfg.FCMToken,
		CreatedAt: now,
		UpdatedAt: now,
	}, true
}
