// Package modkit builds API modules from shared deps and options
//
// Each module package exposes New(deps Deps, opts ...Option) Module, reads its settings from
// Build(opts...) and mounts its routes through Built.Mount
package modkit

import (
	"orgstats/internal/modkit/module"
	"orgstats/internal/modkit/repokit"
	"orgstats/internal/platform/config"
	"orgstats/internal/platform/logger"
)

// Module is what api.Mount registers and mounts
type Module = module.Module

// Deps are handed unchanged to every module
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}

// Named returns Log with a module field
func (d Deps) Named(module string) logger.Logger {
	return d.Log.With().Str("module", module).Logger()
}
