// Package module mounts the meta endpoints under /meta
package module

import (
	"context"
	"fmt"
	"strings"
	"time"

	"orgstats/internal/core/version"
	"orgstats/internal/modkit"
	"orgstats/internal/modkit/httpkit"
	"orgstats/internal/platform/store"
	"orgstats/internal/platform/store/migrate"
	str "orgstats/internal/platform/strings"

	metahttp "orgstats/internal/services/api/meta/http"
)

// Module implements modkit.Module
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	startedAt time.Time
}

// New builds the meta module, it exports no ports
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	return &Module{deps: deps, built: b, startedAt: time.Now()}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: version.Service,
			StartedAt:   m.startedAt,
			Checks:      checks(m.deps.PG),
		})
	})
}

// checks probes postgres and the schema, both are skipped without a database
func checks(db store.TxRunner) []metahttp.Check {
	if db == nil {
		return []metahttp.Check{{Name: "pg"}, {Name: "migrations"}}
	}
	var ping metahttp.Probe
	if p, ok := db.(store.Pinger); ok {
		ping = p.Ping
	}
	return []metahttp.Check{
		{Name: "pg", Probe: ping},
		{Name: "migrations", Probe: func(ctx context.Context) error {
			ids, err := migrate.Pending(ctx, db)
			if err != nil {
				return err
			}
			if len(ids) > 0 {
				return fmt.Errorf("pending: %s", strings.Join(ids, ", "))
			}
			return nil
		}},
	}
}

// Name implements modkit.Module
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }
