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

const detailerColumns = `id, name, business_name, email, phone, fcm_token,
	external_account_id, external_account_linked_at, created_at, updated_at`

// DetailerPostgresRepository reads detailers and records their linked
// payment-processor account in PostgreSQL.
type DetailerPostgresRepository struct {
	db *sql.DB
}

var _ interfaces.IDetailerRepository = (*DetailerPostgresRepository)(nil)

func NewDetailerPostgresRepository(db *sql.DB) *DetailerPostgresRepository {
	return &DetailerPostgresRepository{db: db}
}

func (r *DetailerPostgresRepository) GetByID(ctx context.Context, id string) (entities.Detailer, error) {
	d, err := scanDetailer(r.db.QueryRowContext(ctx, `SELECT `+detailerColumns+` FROM detailers WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Detailer{}, nil
	}
	if err != nil {
		return entities.Detailer{}, fmt.Errorf("read detailer: %w", err)
	}
	return d, nil
}

func (r *DetailerPostgresRepository) SaveExternalAccount(ctx context.Context, detailerID, accountID string, linkedAt time.Time) (entities.Detailer, error) {
	d, err := scanDetailer(r.db.QueryRowContext(ctx, `
		UPDATE detailers SET external_account_id=$2, external_account_linked_at=$3, updated_at=$3
		WHERE id=$1
		RETURNING `+detailerColumns,
		detailerID, accountID, linkedAt.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Detailer{}, nil
	}
	if err != nil {
		return entities.Detailer{}, fmt.Errorf("save external account: %w", err)
	}
	return d, nil
}

// Upsert writes a full detailer profile. Used to seed local databases.
func (r *DetailerPostgresRepository) Upsert(ctx context.Context, d entities.Detailer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO detailers (id, name, business_name, email, phone, fcm_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, business_name=EXCLUDED.business_name,
			email=EXCLUDED.email, phone=EXCLUDED.phone, fcm_token=EXCLUDED.fcm_token, updated_at=EXCLUDED.updated_at
	`, d.ID, d.Name, d.BusinessName, d.Email, d.Phone, d.FCMToken, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert detailer: %w", err)
	}
	return nil
}

func scanDetailer(row rowScanner) (entities.Detailer, error) {
	var (
		d        entities.Detailer
		linkedAt sql.NullTime
	)
	err := row.Scan(&d.ID, &d.Name, &d.BusinessName, &d.Email, &d.Phone, &d.FCMToken,
		&d.ExternalAccountID, &linkedAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return entities.Detailer{}, err
	}
	d.ExternalAccountLinkedAt = nullTimePtr(linkedAt)
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	return d, nil
}
