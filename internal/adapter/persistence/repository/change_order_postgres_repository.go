package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"
)

const changeOrderColumns = `id, quote_id, approval_token, status, amount, reason, decided_at, created_at, updated_at`

// ChangeOrderPostgresRepository persists ChangeOrder entities in PostgreSQL.
type ChangeOrderPostgresRepository struct {
	db *sql.DB
}

var _ interfaces.IChangeOrderRepository = (*ChangeOrderPostgresRepository)(nil)

func NewChangeOrderPostgresRepository(db *sql.DB) *ChangeOrderPostgresRepository {
	return &ChangeOrderPostgresRepository{db: db}
}

func (r *ChangeOrderPostgresRepository) Create(ctx context.Context, co entities.ChangeOrder) (entities.ChangeOrder, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO change_orders (`+changeOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, co.ID, co.QuoteID, co.ApprovalToken, string(co.Status), co.Amount, co.Reason,
		sqlTime(co.DecidedAt), co.CreatedAt.UTC(), co.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return entities.ChangeOrder{}, interfaces.ErrDuplicateKey
		}
		return entities.ChangeOrder{}, fmt.Errorf("insert change order: %w", err)
	}
	return co, nil
}

func (r *ChangeOrderPostgresRepository) GetByApprovalToken(ctx context.Context, token string) (entities.ChangeOrder, error) {
	co, err := scanChangeOrder(r.db.QueryRowContext(ctx, `SELECT `+changeOrderColumns+` FROM change_orders WHERE approval_token=$1`, token))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ChangeOrder{}, nil
	}
	if err != nil {
		return entities.ChangeOrder{}, fmt.Errorf("read change order: %w", err)
	}
	return co, nil
}

func (r *ChangeOrderPostgresRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.ChangeOrder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+changeOrderColumns+` FROM change_orders WHERE quote_id=$1 ORDER BY created_at`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list change orders: %w", err)
	}
	defer rows.Close()

	items := []entities.ChangeOrder{}
	for rows.Next() {
		co, err := scanChangeOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan change order: %w", err)
		}
		items = append(items, co)
	}
	return items, rows.Err()
}

func (r *ChangeOrderPostgresRepository) Decide(ctx context.Context, id string, status entities.ChangeOrderStatus, at time.Time) (entities.ChangeOrder, error) {
	co, err := scanChangeOrder(r.db.QueryRowContext(ctx, `
		UPDATE change_orders SET status=$2, decided_at=$3, updated_at=$3
		WHERE id=$1 AND status=$4
		RETURNING `+changeOrderColumns,
		id, string(status), at.UTC(), string(entities.ChangeOrderStatusPending)))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ChangeOrder{}, nil
	}
	if err != nil {
		return entities.ChangeOrder{}, fmt.Errorf("decide change order: %w", err)
	}
	return co, nil
}

func scanChangeOrder(row rowScanner) (entities.ChangeOrder, error) {
	var (
		co        entities.ChangeOrder
		status    string
		decidedAt sql.NullTime
	)
	err := row.Scan(&co.ID, &co.QuoteID, &co.ApprovalToken, &status, &co.Amount, &co.Reason,
		&decidedAt, &co.CreatedAt, &co.UpdatedAt)
	if err != nil {
		return entities.ChangeOrder{}, err
	}
	co.Status = entities.ChangeOrderStatus(status)
	co.DecidedAt = nullTimePtr(decidedAt)
	co.CreatedAt = co.CreatedAt.UTC()
	co.UpdatedAt = co.UpdatedAt.UTC()
	return co, nil
}
