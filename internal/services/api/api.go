// Package api provides the HTTP API for the application
package api

import (
	"orgstats/internal/platform/config"
	"orgstats/internal/platform/logger"
	phttp "orgstats/internal/platform/net/http"
	"orgstats/internal/platform/net/middleware"
	"orgstats/internal/platform/store"

	"orgstats/internal/modkit"
	"orgstats/internal/modkit/httpkit"
	"orgstats/internal/modkit/module"
	"orgstats/internal/modkit/swaggerkit"

	metamod "orgstats/internal/services/api/meta/module"
	orgstatsmod "orgstats/internal/services/api/orgstats/module"
	pagefiltersmod "orgstats/internal/services/api/pagefilters/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Viewer         middleware.ViewerPort
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// page filters own the Reader port the dashboard consumes
	pageFilters := pagefiltersmod.New(deps)
	pf := module.MustPortsOf[pagefiltersmod.Ports](pageFilters)

	orgStats := orgstatsmod.New(
		deps,
		modkit.WithPorts(orgstatsmod.Ports{
			PageFilters: pf.Reader,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		pageFilters,
		orgStats,
	}

	stack := append(httpkit.CommonStack(opt.Config), middleware.Viewer(opt.Viewer))

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its prefix
			m.MountRoutes(api)
		}
	})

	// Swagger + profiler
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
}
