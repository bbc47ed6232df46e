// Package module wires profiles into the API using modkit
package module

import (
	"net/http"

	"immersion/internal/modkit"
	"immersion/internal/modkit/httpkit"
	"immersion/internal/modkit/module"
	str "immersion/internal/platform/strings"
	profilehttp "immersion/internal/services/api/profile/http"
	profilerepo "immersion/internal/services/api/profile/repo"
	profilesvc "immersion/internal/services/api/profile/service"
	logsmod "immersion/internal/services/logs/module"
)

// Module implements the profile module
type Module struct {
	b     modkit.Built
	svc   profilesvc.Service
	ports Ports
}

// New constructs the profile module
// the logs store must come in through modkit.WithPorts(logsmod.Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("profile"), modkit.WithPrefix("/profile")}, opts...)...)

	in, ok := b.Ports.(logsmod.Ports)
	if !ok || in.Store == nil {
		panic("profile module requires logs ports")
	}

	cfg := FromConfig(deps.Cfg)
	svc := profilesvc.New(deps.PG, profilerepo.NewPG(), in.Store, deps.Clock, profilesvc.Config{
		TestingGuild: cfg.TestingGuild,
		DefaultZone:  cfg.DefaultZone,
	})

	m := &Module{b: b, svc: svc}
	m.ports = Ports{Zones: svc, Profiles: svc}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { profilehttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.b.Mw }

var _ module.Module = (*Module)(nil)
