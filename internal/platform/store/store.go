// Package store is the postgres facade repositories are built on
//
// Repos only see RowQuerier and TxRunner, the pgx pool sits behind the adapter in this
// package and every statement is reported to the pg tracer when SQL logging is on
package store

import (
	"context"
	"errors"
	"fmt"

	"orgstats/internal/platform/logger"
)

// Store owns the postgres seam for the process
// the zero value is usable and has no backend
type Store struct {
	// Log feeds the SQL tracer, the zero logger discards
	Log logger.Logger
	// PG is nil when postgres is disabled
	PG TxRunner
}

// Option configures Open
type Option func(*Store) error

// WithLogger sets Store.Log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error { s.Log = log; return nil }
}

// WithPG installs r instead of dialing, for tests
func WithPG(r TxRunner) Option {
	return func(s *Store) error { s.PG = r; return nil }
}

// Open applies opts then dials postgres when cfg.PG.Enabled
// a runner installed through WithPG is kept as is
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Str("app", cfg.AppName).Logger()

	if cfg.PG.Enabled && s.PG == nil {
		runner, err := openPG(ctx, cfg.AppName, cfg.PG, s)
		if err != nil {
			return nil, err
		}
		s.PG = runner
	}
	return s, nil
}

// Guard pings postgres when it is configured
func (s *Store) Guard(ctx context.Context) error {
	switch {
	case s == nil:
		return errors.New("nil store")
	case s.PG == nil:
		return nil
	}
	p, ok := s.PG.(Pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("pg: %w", err)
	}
	return nil
}

// Close releases the pool, nil safe
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
