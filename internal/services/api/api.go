// Package api composes the immersion modules and mounts the HTTP API
package api

import (
	"context"
	"net/http"

	"immersion/internal/platform/config"
	"immersion/internal/platform/logger"
	phttp "immersion/internal/platform/net/http"
	"immersion/internal/platform/net/middleware"
	"immersion/internal/platform/store"
	ptime "immersion/internal/platform/time"

	"immersion/internal/modkit"
	"immersion/internal/modkit/httpkit"
	"immersion/internal/modkit/module"
	"immersion/internal/modkit/swaggerkit"

	immersionmod "immersion/internal/services/api/immersion/module"
	metamod "immersion/internal/services/api/meta/module"
	profilemod "immersion/internal/services/api/profile/module"
	logsmod "immersion/internal/services/logs/module"
)

// Options are the API options
type Options struct {
	// Config is the root view; modules pick their own prefixes
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Clock          ptime.Clock
	Stack          httpkit.StackOptions
	Auth           middleware.AuthPort // nil leaves the API open
	Mirror         bool                // force the clickhouse mirror on regardless of CORE_IMMERSION_MIRROR
	EnableSwagger  bool
	EnableProfiler bool
}

// Modules are the wired modules, usable without HTTP
type Modules struct {
	Logs      *logsmod.Module
	Profile   *profilemod.Module
	Immersion *immersionmod.Module
	Meta      modkit.Module
}

// Build constructs every module and cross wires their ports
func Build(opt Options) Modules {
	deps := modkit.Deps{
		Cfg:   opt.Config,
		PG:    opt.Store.PG,
		CH:    opt.Store.CH,
		Clock: ptime.Or(opt.Clock),
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	auth := modkit.WithMiddlewares(httpkit.Auth(opt.Auth))

	logs := logsmod.New(deps, logsmod.Options{Mirror: opt.Mirror})
	logStore := module.MustPortsOf[logsmod.Ports](logs).Store

	profile := profilemod.New(deps, auth, modkit.WithPorts(logsmod.Ports{Store: logStore}))
	zones := module.MustPortsOf[profilemod.Ports](profile).Zones

	imm := immersionmod.New(deps, auth, modkit.WithPorts(immersionmod.Needs{Store: logStore, Zones: zones}))

	return Modules{Logs: logs, Profile: profile, Immersion: imm, Meta: metamod.New(deps)}
}

// All lists the modules in mount order
func (m Modules) All() []module.Module {
	return []module.Module{m.Meta, m.Logs, m.Profile, m.Immersion}
}

// Migrate applies the storage schema the modules need
func Migrate(ctx context.Context, m Modules) error {
	return m.Logs.Migrate(ctx)
}

// Mount builds the modules and mounts the versioned API onto the given router
func Mount(r phttp.Router, opt Options) Modules {
	mods := Build(opt)

	// liveness for load balancers, outside the versioned group and its auth
	r.Handle("/health", middleware.Heartbeat("/health")(http.NotFoundHandler()))

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		module.MountAll(api, mods.All()...)
	})

	// Swagger + profiler
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler, httpkit.Auth(opt.Auth))

	return mods
}
