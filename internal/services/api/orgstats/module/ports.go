package module

import "orgstats/internal/services/api/orgstats/domain"

// Ports are the ports this module consumes, inject them with modkit.WithPorts
type Ports struct {
	PageFilters domain.PageFilterReader
}

// Ports returns the injected ports
func (m *Module) Ports() any { return m.built.Ports }
