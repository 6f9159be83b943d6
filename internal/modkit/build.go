package modkit

import (
	"net/http"

	phttp "orgstats/internal/platform/net/http"
	str "orgstats/internal/platform/strings"
)

// Built is the resolved module configuration
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	extra []func(phttp.Router)
}

// Option sets one field of Built, options apply in order so later ones win
type Option func(*Built)

// WithName names the module in logs and the registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the path the module is mounted under
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends middleware that only wraps the module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands the module the ports it consumes from other modules
// T is declared by the consuming module, e.g. orgstats.Ports{PageFilters: ...}
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRegister adds routes next to the module's own, nil is ignored
func WithRegister(fn func(phttp.Router)) Option {
	return func(b *Built) {
		if fn != nil {
			b.extra = append(b.extra, fn)
		}
	}
}

// Build resolves opts into a fresh Built
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Mount opens the module prefix on r with the module middleware,
// then runs register and any WithRegister extras inside it
func (b Built) Mount(r phttp.Router, register func(phttp.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(sub phttp.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		if register != nil {
			register(sub)
		}
		for _, fn := range b.extra {
			fn(sub)
		}
	})
}
