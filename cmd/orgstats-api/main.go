// @title         orgstats API
// @version       0.1.0
// @description   Organization usage dashboard state and page filters

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"orgstats/internal/modkit/repokit"
	"orgstats/internal/platform/config"
	"orgstats/internal/platform/logger"
	phttp "orgstats/internal/platform/net/http"
	"orgstats/internal/platform/store"
	"orgstats/internal/platform/store/migrate"

	"orgstats/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	// bring up logging early
	l := logger.Get()

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "orgstats-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				MinConns:    int32(pgCfg.MayInt("MIN_CONNS", 0)),
				MaxConnIdle: pgCfg.MayDuration("MAX_CONN_IDLE", 5*time.Minute),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	if pgCfg.MayBool("MIGRATE", true) {
		applied, err := migrate.Up(ctx, st.PG)
		if err != nil {
			l.Panic().Err(err).Msg("migrations failed")
		}
		l.Info().Strs("applied", applied).Msg("migrations done")
	}

	// http server (reads CORE_API_PORT / CORE_API_TIMEOUT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			l.Panic().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		l.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), apiCfg.MayDuration("SHUTDOWN_TIMEOUT", 15*time.Second))
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("http shutdown")
		}
	}
}
