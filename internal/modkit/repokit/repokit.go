// Package repokit holds the seams services use to reach their SQL repos
//
// A service keeps a Binder for its repo and binds it either to the pool for plain reads
// or to the tx handed out by WithTx for writes
package repokit

import (
	"context"

	"orgstats/internal/platform/store"
)

type (
	// Queryer is what a bound repo runs statements on, the pool or a tx
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
	// Row is a single row result
	Row = store.Row
	// CommandTag reports what a write touched
	CommandTag = store.CommandTag
)

// Binder produces a repo of type T on top of a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain function to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q and panics when q is nil
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind on nil Queryer")
	}
	return b.Bind(q)
}

// WithTx runs fn in one transaction on tx, fn's error rolls it back
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
