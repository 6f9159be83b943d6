package store

import (
	"context"
	"errors"
	"time"

	"orgstats/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is the surface shared by pgxpool.Pool and pgx.Tx
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgAdapter wraps pg.PG and implements TxRunner
type pgAdapter struct {
	p *pg.PG
	querier
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{
		p:       p,
		querier: querier{q: p.Pool, em: emitter{tracer: p.Tracer, slowMs: p.SlowMs}},
	}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

// Tx runs fn inside a transaction, rolling back when fn errors
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(querier{q: tx, em: a.em}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// querier adapts a pgx surface to RowQuerier and traces every statement
type querier struct {
	q  pgxQuerier
	em emitter
}

func (x querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := x.q.Exec(ctx, sql, args...)
	x.em.emit(ctx, sql, args, start, err)
	return tag{ct}, err
}

// Query emits on open, scan time is not included
func (x querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := x.q.Query(ctx, sql, args...)
	x.em.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

// QueryRow emits after Scan so the scan error is captured
func (x querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := x.q.QueryRow(ctx, sql, args...)
	return row{
		r: r,
		after: func(scanErr error) {
			x.em.emit(ctx, sql, args, start, scanErr)
		},
	}
}

type emitter struct {
	tracer pg.QueryTracer
	slowMs int
}

func (e emitter) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if e.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	e.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      e.slowMs >= 0 && elapsedUS >= int64(e.slowMs)*1000,
	})
}

type row struct {
	r     pgx.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct{ r pgx.Rows }

func (x rows) Next() bool            { return x.r.Next() }
func (x rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rows) Err() error            { return x.r.Err() }
func (x rows) Close()                { x.r.Close() }
func (x rows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = f[i].Name
	}
	return out
}

type tag struct{ t pgconn.CommandTag }

func (t tag) String() string      { return t.t.String() }
func (t tag) RowsAffected() int64 { return t.t.RowsAffected() }
