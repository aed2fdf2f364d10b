package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"
)

const billingPaymentColumns = `id, quote_id, amount, date, status, provider_payload`

// BillingPaymentPostgresRepository persists BillingPayment entities in
// PostgreSQL. The provider response is stored as JSONB.
type BillingPaymentPostgresRepository struct {
	db *sql.DB
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentPostgresRepository)(nil)

func NewBillingPaymentPostgresRepository(db *sql.DB) *BillingPaymentPostgresRepository {
	return &BillingPaymentPostgresRepository{db: db}
}

func (r *BillingPaymentPostgresRepository) Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	var payload any
	if len(p.ProviderPayloadRaw) > 0 && json.Valid(p.ProviderPayloadRaw) {
		payload = string(p.ProviderPayloadRaw)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO billing_payments (`+billingPaymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.QuoteID, p.Amount, p.Date.UTC(), string(p.Status), payload)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.BillingPayment{}, interfaces.ErrDuplicateKey
		}
		return entities.BillingPayment{}, fmt.Errorf("insert billing payment: %w", err)
	}
	return p, nil
}

func (r *BillingPaymentPostgresRepository) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	p, err := scanBillingPayment(r.db.QueryRowContext(ctx, `SELECT `+billingPaymentColumns+` FROM billing_payments WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.BillingPayment{}, nil
	}
	if err != nil {
		return entities.BillingPayment{}, fmt.Errorf("read billing payment: %w", err)
	}
	return p, nil
}

func (r *BillingPaymentPostgresRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.BillingPayment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+billingPaymentColumns+` FROM billing_payments WHERE quote_id=$1 ORDER BY date DESC`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list billing payments: %w", err)
	}
	defer rows.Close()

	items := []entities.BillingPayment{}
	for rows.Next() {
		p, err := scanBillingPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan billing payment: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func scanBillingPayment(row rowScanner) (entities.BillingPayment, error) {
	var (
		p       entities.BillingPayment
		status  string
		payload []byte
	)
	if err := row.Scan(&p.ID, &p.QuoteID, &p.Amount, &p.Date, &status, &payload); err != nil {
		return entities.BillingPayment{}, err
	}
	p.Status = entities.PaymentStatus(status)
	p.Date = p.Date.UTC()
	if len(payload) > 0 {
		p.ProviderPayloadRaw = json.RawMessage(payload)
		var parsed map[string]interface{}
		if err := json.Unmarshal(payload, &parsed); err == nil {
			p.ProviderPayload = parsed
		}
	}
	return p, nil
}
