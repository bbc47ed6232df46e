package module

import (
	"slices"
	"sync"
)

// registry holds each mounted module's ports by name for the life of the process
var registry = struct {
	sync.RWMutex
	ports map[string]any
}{ports: map[string]any{}}

// Register stores a module's ports under its name, replacing an earlier entry
func Register(name string, ports any) {
	registry.Lock()
	defer registry.Unlock()
	registry.ports[name] = ports
}

// PortsAs fetches the ports registered for name as T
func PortsAs[T any](name string) (T, bool) {
	registry.RLock()
	v, ok := registry.ports[name]
	registry.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Names lists the registered modules in sorted order
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	out := make([]string, 0, len(registry.ports))
	for name := range registry.ports {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Reset empties the registry; tests only
func Reset() {
	registry.Lock()
	defer registry.Unlock()
	registry.ports = map[string]any{}
}
