// Package module is the contract between api.Mount and the service modules
//
// It lives apart from modkit so a module can export its Ports type and consume another
// module's Ports without importing modkit back
package module

import phttp "orgstats/internal/platform/net/http"

// Module is one mountable slice of the API
type Module interface {
	// MountRoutes registers the module under its prefix on r
	MountRoutes(r phttp.Router)
	// Ports is the module's exported port set, nil when it has none
	Ports() any
	// Name keys the module in the registry and the meta service listing
	Name() string
}
