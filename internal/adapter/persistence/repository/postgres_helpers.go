package repository

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func sqlTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// placeholders renders "$start, $start+1, ..." for n values.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "$" + strconv.Itoa(start+i)
	}
	return strings.Join(parts, ", ")
}

// prefixed qualifies every column of a comma separated list with prefix.
func prefixed(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i, c := range parts {
		parts[i] = prefix + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}

// trailingScanner appends extra destinations after the ones the wrapped scan
// function asks for.
type trailingScanner struct {
	row   rowScanner
	extra []any
}

func withTrailing(row rowScanner, extra ...any) rowScanner {
	return trailingScanner{row: row, extra: extra}
}

func (t trailingScanner) Scan(dest ...any) error {
	return t.row.Scan(append(dest, t.extra...)...)
}
