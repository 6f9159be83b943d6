// Package module wires the usage dashboard into the API using modkit
package module

import (
	"time"

	"orgstats/internal/core/window"
	modkit "orgstats/internal/modkit"
	"orgstats/internal/modkit/httpkit"
	str "orgstats/internal/platform/strings"
	"orgstats/internal/services/api/orgstats/domain"
	oshttp "orgstats/internal/services/api/orgstats/http"
	osrepo "orgstats/internal/services/api/orgstats/repo"
	ossvc "orgstats/internal/services/api/orgstats/service"
	"orgstats/internal/services/api/validation"
)

// Module implements the modkit.Module interface
type Module struct {
	built modkit.Built
	svc   ossvc.Service
}

// New constructs the dashboard module
// the page filter reader comes from Ports injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(opts...)

	var pages domain.PageFilterReader
	if p, ok := b.Ports.(Ports); ok {
		pages = p.PageFilters
	}

	api := deps.Cfg.Prefix("CORE_API_")
	svc := ossvc.New(deps.PG, osrepo.NewPG(), pages, ossvc.Options{
		DefaultPeriod: api.MayMatch("DEFAULT_PERIOD", window.DefaultPeriod, window.ValidPeriod),
		Location:      api.MayLocation("TZ", time.Local),
	})
	return NewWithService(svc, opts...)
}

// NewWithService builds the module around an existing service, tests use it with fakes
func NewWithService(svc ossvc.Service, opts ...modkit.Option) *Module {
	validation.MustRegister()
	defaults := []modkit.Option{
		modkit.WithName("orgstats"),
		modkit.WithPrefix("/organizations/{orgSlug}/stats"),
		modkit.WithMiddlewares(httpkit.OrgScope),
	}
	return &Module{built: modkit.Build(append(defaults, opts...)...), svc: svc}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { oshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }
