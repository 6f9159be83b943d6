// Package module wires page filters into the API using modkit
package module

import (
	modkit "orgstats/internal/modkit"
	"orgstats/internal/modkit/httpkit"
	str "orgstats/internal/platform/strings"
	pfhttp "orgstats/internal/services/api/pagefilters/http"
	pfrepo "orgstats/internal/services/api/pagefilters/repo"
	pfsvc "orgstats/internal/services/api/pagefilters/service"
	"orgstats/internal/services/api/validation"
)

// Module implements the modkit.Module interface
type Module struct {
	built modkit.Built
	svc   pfsvc.Service
	ports Ports
}

// New constructs the page filter module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := pfsvc.New(deps.PG, pfrepo.NewPG())
	return NewWithService(svc, opts...)
}

// NewWithService builds the module around an existing service, tests use it with fakes
func NewWithService(svc pfsvc.Service, opts ...modkit.Option) *Module {
	validation.MustRegister()
	defaults := []modkit.Option{
		modkit.WithName("pagefilters"),
		modkit.WithPrefix("/organizations/{orgSlug}/page-filters"),
		modkit.WithMiddlewares(httpkit.OrgScope),
	}
	return &Module{
		built: modkit.Build(append(defaults, opts...)...),
		svc:   svc,
		ports: Ports{Reader: svc},
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { pfhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }
