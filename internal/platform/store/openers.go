package store

import (
	"context"
	"fmt"
	"time"

	"orgstats/internal/platform/store/pg"
)

// pinger is the pool surface the boot loop needs
type pinger interface {
	Ping(ctx context.Context) error
}

var (
	openPool = pg.Open
	sleep    = time.Sleep
)

// openPG opens pg and wraps it with our sql adapter
func openPG(ctx context.Context, appName string, cfg PGConfig, s *Store) (TxRunner, error) {
	cfg = cfg.withDefaults()

	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := openPool(ctx, pg.Config{
		URL:         cfg.URL,
		AppName:     appName,
		MaxConns:    cfg.MaxConns,
		MinConns:    cfg.MinConns,
		MaxConnIdle: cfg.MaxConnIdle,
		SlowMs:      cfg.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	if err := pingWithBackoff(ctx, p.Pool, cfg.ConnectRetries, cfg.PingTimeout); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

// pingWithBackoff pings the pool directly so boot retries leave no SQL trace lines
func pingWithBackoff(ctx context.Context, p pinger, attempts int, timeout time.Duration) error {
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = p.Ping(toCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sleep(backoff)
		backoff = min(backoff*2, backoffCeiling)
	}
	return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}
