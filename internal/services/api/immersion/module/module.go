// Package module wires immersion logging into the API using modkit
package module

import (
	"net/http"

	"immersion/internal/modkit"
	"immersion/internal/modkit/httpkit"
	str "immersion/internal/platform/strings"
	immhttp "immersion/internal/services/api/immersion/http"
	immsvc "immersion/internal/services/api/immersion/service"
	profile "immersion/internal/services/api/profile/domain"
	logs "immersion/internal/services/logs/domain"
)

// Needs are the ports this module borrows, passed with modkit.WithPorts
type Needs struct {
	Store logs.StorePort
	Zones profile.ZonePort
}

// Ports are what the module exposes
type Ports struct {
	Logger immsvc.Service
}

// Module implements the immersion module
type Module struct {
	b     modkit.Built
	svc   immsvc.Service
	ports Ports
}

// New constructs the immersion module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("immersion"), modkit.WithPrefix("/immersion")}, opts...)...)

	needs, ok := b.Ports.(Needs)
	if !ok {
		panic("immersion module requires Needs ports")
	}
	svc := immsvc.New(needs.Store, needs.Zones, deps.Clock)

	m := &Module{b: b, svc: svc}
	m.ports = Ports{Logger: svc}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { immhttp.Register(rr, m.svc) })
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.b.Mw }
