// Command immersion-api serves the logging and profile endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"immersion/internal/modkit/httpkit"
	"immersion/internal/modkit/repokit"
	"immersion/internal/platform/config"
	"immersion/internal/platform/logger"
	phttp "immersion/internal/platform/net/http"
	"immersion/internal/platform/net/middleware"
	"immersion/internal/platform/store"

	"immersion/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Named("api")

	// postgres is required, clickhouse only backs the optional mirror
	chURL := chCfg.MayString("DBURL", "")
	st, err := store.Open(ctx,
		store.Config{
			AppName: "immersion-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				MinConns:    int32(pgCfg.MayInt("MIN_CONNS", 1)),
				MaxIdleTime: pgCfg.MayDuration("MAX_IDLE", 5*time.Minute),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled:     chURL != "",
				URL:         chURL,
				ClientName:  "immersion",
				ClientTag:   "api",
				DialTimeout: chCfg.MayDuration("DIAL_TIMEOUT", 0),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	var auth middleware.AuthPort
	if tok := apiCfg.MayString("TOKEN", ""); tok != "" {
		auth = middleware.StaticToken{Caller: "bot", Token: tok}
	} else {
		l.Warn().Msg("CORE_API_TOKEN unset; API is open")
	}

	srv := phttp.NewServer(phttp.ServerConfig{
		Addr:            apiCfg.MustPort("PORT"),
		ReadTimeout:     apiCfg.MayDuration("READ_TIMEOUT", 0),
		WriteTimeout:    apiCfg.MayDuration("WRITE_TIMEOUT", 0),
		ShutdownTimeout: apiCfg.MayDuration("SHUTDOWN_TIMEOUT", 0),
	})

	// mount our API
	mods := api.Mount(
		srv.Router(),
		api.Options{
			Config: root,
			Store:  st,
			Logger: l,
			Auth:   auth,
			Stack: httpkit.StackOptions{
				CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
				SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", 0),
				Timeout:     apiCfg.MayDuration("TIMEOUT", 0),
			},
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)
	if err := api.Migrate(ctx, mods); err != nil {
		l.Panic().Err(err).Msg("schema migration failed")
	}
	l.Info().Str("addr", srv.Addr()).Bool("mirror", mods.Logs.Mirroring()).Msg("immersion api starting")

	// run until signalled
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
