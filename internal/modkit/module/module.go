// Package module holds the module contract plus the port registry used during bootstrap
package module

import (
	phttp "immersion/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit
// kept as a sibling of modkit.Module so port lookups do not import modkit
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// MountAll registers every module's ports under its name, then mounts its routes on r
func MountAll(r phttp.Router, mods ...Module) {
	for _, m := range mods {
		Register(m.Name(), m.Ports())
	}
	for _, m := range mods {
		m.MountRoutes(r)
	}
}
