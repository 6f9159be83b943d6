package module

import "orgstats/internal/services/api/pagefilters/domain"

// Ports is the port set other modules may pull with module.MustPortsOf
type Ports struct {
	Reader domain.Reader
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
