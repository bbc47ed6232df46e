// Command immersionctl parses, logs and inspects immersion from the shell
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"immersion/internal/modkit/module"
	"immersion/internal/platform/config"
	perr "immersion/internal/platform/errors"
	"immersion/internal/platform/logger"
	"immersion/internal/platform/store"
	"immersion/internal/services/api"
	immersion "immersion/internal/services/api/immersion/domain"
	immersionmod "immersion/internal/services/api/immersion/module"
	profile "immersion/internal/services/api/profile/domain"
	profilemod "immersion/internal/services/api/profile/module"

	"github.com/spf13/cobra"
)

// backend is what the storage backed commands drive
type backend struct {
	logger  immersion.ServicePort
	profile profile.ServicePort
	migrate func(context.Context) error
	close   func()
}

// connect opens postgres and wires the modules; a seam for tests
var connect = func(ctx context.Context) (*backend, error) {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	chURL := chCfg.MayString("DBURL", "")
	st, err := store.Open(ctx, store.Config{
		AppName: "immersionctl",
		PG: store.PGConfig{
			Enabled:        true,
			URL:            pgCfg.MustString("DBURL"),
			MaxConns:       2,
			LogSQL:         pgCfg.MayBool("LOG_SQL", false),
			ConnectRetries: 3,
		},
		CH: store.CHConfig{Enabled: chURL != "", URL: chURL, ClientName: "immersion", ClientTag: "ctl"},
	}, store.WithLogger(*logger.Get()))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := st.Guard(ctx); err != nil {
		_ = st.Close(ctx)
		return nil, err
	}

	mods := api.Build(api.Options{Config: root, Store: st, Logger: logger.Named("ctl")})
	return &backend{
		logger:  module.MustPortsOf[immersionmod.Ports](mods.Immersion).Logger,
		profile: module.MustPortsOf[profilemod.Ports](mods.Profile).Profiles,
		migrate: func(ctx context.Context) error { return api.Migrate(ctx, mods) },
		close:   func() { _ = st.Close(context.Background()) },
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "immersionctl",
		Short:         "immersionctl - log and inspect immersion",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd(), newLogCmd(false), newLogCmd(true), newProfileCmd(), newTimezoneCmd(), newMigrateCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), describe(err))
		os.Exit(1)
	}
}

// describe prefixes project errors with their class so scripts can tell rule violations from format errors
func describe(err error) string {
	e, ok := perr.As(err)
	if !ok {
		return "error: " + err.Error()
	}
	if e.Field() != "" {
		return fmt.Sprintf("%s error (%s): %s", e.Code(), e.Field(), err)
	}
	return fmt.Sprintf("%s error: %s", e.Code(), err)
}

// printJSON writes v indented, the format every command prints
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withBackend opens the backend for the duration of fn
func withBackend(ctx context.Context, fn func(*backend) error) error {
	b, err := connect(ctx)
	if err != nil {
		return err
	}
	defer b.close()
	return fn(b)
}
