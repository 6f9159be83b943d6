package store

import (
	"context"
	"errors"
)

type fakeTag struct{ n int64 }

func (t fakeTag) String() string      { return "UPDATE" }
func (t fakeTag) RowsAffected() int64 { return t.n }

type fakeRows struct {
	data [][]any
	i    int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dst ...any) error {
	cur := r.data[r.i-1]
	if len(dst) != len(cur) {
		return errors.New("scan arity")
	}
	for i, d := range dst {
		switch p := d.(type) {
		case *string:
			*p = cur[i].(string)
		case *int:
			*p = cur[i].(int)
		default:
			return errors.New("unsupported dest")
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return nil }

type fakeQuerier struct {
	tag     fakeTag
	execErr error
	rows    *fakeRows
	pingErr error
	closed  bool
}

func (q *fakeQuerier) Exec(context.Context, string, ...any) (CommandTag, error) {
	return q.tag, q.execErr
}

func (q *fakeQuerier) Query(context.Context, string, ...any) (Rows, error) {
	if q.rows == nil {
		return nil, errors.New("no rows configured")
	}
	return q.rows, nil
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		return errRow{err}
	}
	if !rs.Next() {
		return errRow{errors.New("no rows")}
	}
	return rs
}

func (q *fakeQuerier) Tx(ctx context.Context, fn func(RowQuerier) error) error { return fn(q) }
func (q *fakeQuerier) Ping(context.Context) error                              { return q.pingErr }
func (q *fakeQuerier) Close() error                                            { q.closed = true; return nil }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
