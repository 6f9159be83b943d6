// Package pg opens the pgx pool behind the store and carries its tracer
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the pool shape the api needs, zero fields keep the pgx defaults
type Config struct {
	URL         string
	AppName     string
	MaxConns    int32
	MinConns    int32
	MaxConnIdle time.Duration
	SlowMs      int
}

// PG couples the pool with the tracer every statement is reported to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

// PoolTweak adjusts the parsed pool config before the pool is created
type PoolTweak func(*pgxpool.Config)

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL, applies cfg and tweak, and creates the pool
// no connection is made until the first statement or ping
func Open(ctx context.Context, cfg Config, tracer QueryTracer, tweak PoolTweak) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	apply(pcfg, cfg)
	if tweak != nil {
		tweak(pcfg)
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

func apply(pcfg *pgxpool.Config, cfg Config) {
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= pcfg.MaxConns {
		pcfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnIdle > 0 {
		pcfg.MaxConnIdleTime = cfg.MaxConnIdle
	}
	if cfg.AppName != "" {
		if pcfg.ConnConfig.RuntimeParams == nil {
			pcfg.ConnConfig.RuntimeParams = map[string]string{}
		}
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
}

// Close closes the pool, nil safe
func (p *PG) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}
