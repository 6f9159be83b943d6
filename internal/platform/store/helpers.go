package store

import (
	"context"

	perr "orgstats/internal/platform/errors"
)

// ScanFunc maps the current row onto T
type ScanFunc[T any] func(Row) (T, error)

// ExecOne runs a write that must touch exactly one row
// zero rows is perr.ErrNotFound, several rows is a conflict
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	return expectOne(tag.RowsAffected())
}

// One returns the single row sql yields
// it reads at most two rows so an unexpected fan out is caught without draining the set
func One[T any](ctx context.Context, q RowQuerier, scan ScanFunc[T], sql string, args ...any) (T, error) {
	var zero T
	items, err := collect(ctx, q, scan, 2, sql, args...)
	if err != nil {
		return zero, err
	}
	if err := expectOne(int64(len(items))); err != nil {
		return zero, err
	}
	return items[0], nil
}

// Many returns every row sql yields, nil when there are none
func Many[T any](ctx context.Context, q RowQuerier, scan ScanFunc[T], sql string, args ...any) ([]T, error) {
	return collect(ctx, q, scan, 0, sql, args...)
}

// collect scans up to limit rows, zero means all of them
func collect[T any](ctx context.Context, q RowQuerier, scan ScanFunc[T], limit int, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for (limit == 0 || len(out) < limit) && rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func expectOne(n int64) error {
	switch {
	case n == 1:
		return nil
	case n == 0:
		return perr.ErrNotFound
	default:
		return perr.Newf(perr.ErrorCodeConflict, "expected one row, got %d or more", n)
	}
}
