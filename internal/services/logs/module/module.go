// Package module wires the logs service and exposes its store port
package module

import (
	"context"

	"immersion/internal/modkit"
	"immersion/internal/modkit/httpkit"
	"immersion/internal/services/logs/domain"
	"immersion/internal/services/logs/repo"
	"immersion/internal/services/logs/service"
)

// Module is the logs module; it serves no routes of its own
type Module struct {
	deps   modkit.Deps
	ports  Ports
	mirror *repo.CH
}

// New constructs the logs module
func New(deps modkit.Deps, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	if overrides.Mirror {
		opts.Mirror = true
	}

	m := &Module{deps: deps}

	var mirror domain.Mirror = repo.Nop{}
	if opts.Mirror && deps.CH != nil {
		m.mirror = repo.NewCH(deps.CH)
		mirror = m.mirror
	}
	m.ports = Ports{Store: service.New(deps.PG, repo.NewPG(), mirror)}
	return m
}

// Migrate applies the postgres schema, and the clickhouse table when mirroring
func (m *Module) Migrate(ctx context.Context) error {
	if err := repo.Migrate(ctx, m.deps.PG); err != nil {
		return err
	}
	if m.mirror != nil {
		return m.mirror.EnsureSchema(ctx)
	}
	return nil
}

// Mirroring reports whether records are copied to clickhouse
func (m *Module) Mirroring() bool { return m.mirror != nil }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "logs" }

// Prefix returns the module route prefix (none, no routes)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
