// @title         Veracity API
// @version       0.1.0
// @description   Content verification: intake, provider dispatch, records and stats

package main

import (
	"context"

	"veracity/internal/modkit/module"
	"veracity/internal/platform/config"
	"veracity/internal/platform/logger"
	phttp "veracity/internal/platform/net/http"
	"veracity/internal/platform/store"

	"veracity/internal/services/api"
	eventsmod "veracity/internal/services/events/module"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	rdCfg := root.Prefix("SERVICE_REDIS_")      // rdCfg lives under SERVICE_REDIS_*

	// bring up logging early
	l := logger.Get()

	// clickhouse and redis are optional; the API degrades without them
	chURL := chCfg.MayString("DBURL", "")
	rdURL := rdCfg.MayString("URL", "")

	// open the platform store (postgres required, CH and redis when configured)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "veracity",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled: chURL != "",
				URL:     chURL,
				Role:    "veracity",
				Tag:     "api",
			},
			RD: store.RedisConfig{
				Enabled: rdURL != "",
				URL:     rdURL,
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

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API; modules read their own prefixes off the root config
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// run the analytics flusher alongside the server; events are best effort
	if ev, ok := module.PortsAs[eventsmod.Ports]("events"); ok && ev.Flusher != nil {
		go func() {
			if err := ev.Flusher.Run(ctx); err != nil {
				l.Error().Err(err).Msg("events flusher stopped")
			}
		}()
	}

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
