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

const quoteColumns = `id, detailer_id, share_link, title, customer_name, customer_email, total, status,
	viewed_at, last_viewed_at, view_count, viewer_ip, viewer_device,
	sent_at, approved_at, paid_at, created_at, updated_at`

// QuotePostgresRepository persists Quote entities in PostgreSQL.
type QuotePostgresRepository struct {
	db *sql.DB
}

var _ interfaces.IQuoteRepository = (*QuotePostgresRepository)(nil)

func NewQuotePostgresRepository(db *sql.DB) *QuotePostgresRepository {
	return &QuotePostgresRepository{db: db}
}

func (r *QuotePostgresRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quotes (`+quoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, q.ID, q.DetailerID, q.ShareLink, q.Title, q.CustomerName, q.CustomerEmail, q.Total, string(q.Status),
		sqlTime(q.ViewedAt), sqlTime(q.LastViewedAt), q.ViewCount, q.ViewerIP, q.ViewerDevice,
		sqlTime(q.SentAt), sqlTime(q.ApprovedAt), sqlTime(q.PaidAt), q.CreatedAt.UTC(), q.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return entities.Quote{}, interfaces.ErrDuplicateKey
		}
		return entities.Quote{}, fmt.Errorf("insert quote: %w", err)
	}
	return q, nil
}

func (r *QuotePostgresRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	return r.getOne(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id=$1`, id)
}

func (r *QuotePostgresRepository) GetByShareLink(ctx context.Context, shareLink string) (entities.Quote, error) {
	return r.getOne(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE share_link=$1`, shareLink)
}

func (r *QuotePostgresRepository) getOne(ctx context.Context, query string, arg string) (entities.Quote, error) {
	q, err := scanQuote(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Quote{}, nil
	}
	if err != nil {
		return entities.Quote{}, fmt.Errorf("read quote: %w", err)
	}
	return q, nil
}

func (r *QuotePostgresRepository) ListByDetailerID(ctx context.Context, detailerID string) ([]entities.Quote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE detailer_id=$1 ORDER BY created_at DESC`, detailerID)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	items := []entities.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		items = append(items, q)
	}
	return items, rows.Err()
}

// RecordView applies a view in one statement. The locking subquery yields the
// pre-update viewed_at, so among concurrent views only the one that finds it
// NULL reports FirstView.
func (r *QuotePostgresRepository) RecordView(ctx context.Context, id string, view entities.QuoteView) (interfaces.RecordViewResult, error) {
	at := view.At.UTC()
	var first bool
	row := r.db.QueryRowContext(ctx, `
		UPDATE quotes q
		SET status=$2, view_count=q.view_count+1, last_viewed_at=$3, viewer_ip=$4, viewer_device=$5,
			updated_at=$3, viewed_at=COALESCE(q.viewed_at, $3)
		FROM (SELECT id, viewed_at FROM quotes WHERE id=$1 FOR UPDATE) prev
		WHERE q.id=prev.id AND q.status NOT IN ($6, $7)
		RETURNING `+prefixed("q.", quoteColumns)+`, prev.viewed_at IS NULL`,
		id, string(entities.QuoteStatusViewed), at, view.IP, view.Device,
		string(entities.QuoteStatusApproved), string(entities.QuoteStatusPaid))
	q, err := scanQuote(withTrailing(row, &first))
	if errors.Is(err, sql.ErrNoRows) {
		return interfaces.RecordViewResult{}, nil
	}
	if err != nil {
		return interfaces.RecordViewResult{}, fmt.Errorf("record view: %w", err)
	}
	return interfaces.RecordViewResult{Quote: q, FirstView: first, Applied: true}, nil
}

func (r *QuotePostgresRepository) TransitionStatus(ctx context.Context, id string, from []entities.QuoteStatus, to entities.QuoteStatus, at time.Time) (entities.Quote, error) {
	set := "status=$2, updated_at=$3"
	if field := statusTimestampField(to); field != "" {
		set += ", " + field + "=$3"
	}
	args := []any{id, string(to), at.UTC()}
	for _, s := range from {
		args = append(args, string(s))
	}

	query := `UPDATE quotes SET ` + set + ` WHERE id=$1 AND status IN (` + placeholders(4, len(from)) + `) RETURNING ` + quoteColumns
	q, err := scanQuote(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Quote{}, nil
	}
	if err != nil {
		return entities.Quote{}, fmt.Errorf("transition quote: %w", err)
	}
	return q, nil
}

func scanQuote(row rowScanner) (entities.Quote, error) {
	var (
		q                                                  entities.Quote
		status                                             string
		viewedAt, lastViewedAt, sentAt, approvedAt, paidAt sql.NullTime
	)
	err := row.Scan(&q.ID, &q.DetailerID, &q.ShareLink, &q.Title, &q.CustomerName, &q.CustomerEmail, &q.Total, &status,
		&viewedAt, &lastViewedAt, &q.ViewCount, &q.ViewerIP, &q.ViewerDevice,
		&sentAt, &approvedAt, &paidAt, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return entities.Quote{}, err
	}
	q.Status = entities.QuoteStatus(status)
	q.ViewedAt = nullTimePtr(viewedAt)
	q.LastViewedAt = nullTimePtr(lastViewedAt)
	q.SentAt = nullTimePtr(sentAt)
	q.ApprovedAt = nullTimePtr(approvedAt)
	q.PaidAt = nullTimePtr(paidAt)
	q.CreatedAt = q.CreatedAt.UTC()
	q.UpdatedAt = q.UpdatedAt.UTC()
	return q, nil
}
