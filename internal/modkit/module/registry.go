package module

import (
	"slices"
	"sync"
)

// registry maps module names to the port sets they exported at mount time
type registry struct {
	mu    sync.RWMutex
	ports map[string]any
}

var reg = &registry{ports: map[string]any{}}

// Register records ports under name, a later call for the same name replaces it
func Register(name string, ports any) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.ports[name] = ports
}

// PortsAs returns the port set for name when it exists and is a T
func PortsAs[T any](name string) (T, bool) {
	reg.mu.RLock()
	v, ok := reg.ports[name]
	reg.mu.RUnlock()

	out, isT := v.(T)
	return out, ok && isT
}

// Names lists the registered modules in lexical order
func Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]string, 0, len(reg.ports))
	for name := range reg.ports {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Reset empties the registry, tests only
func Reset() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.ports = map[string]any{}
}
