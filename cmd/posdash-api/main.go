// @title         POS Dashboard API
// @version       0.1.0
// @description   Sales dashboard over the POS aggregation backend: periods, hierarchy filters, batched queries and saved views

package main

//go:generate swag init --v3.1 -g main.go -d ./,../../internal -o ../../internal/services/api/docs --instanceName api

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"posdash/internal/adapters/upstream"
	"posdash/internal/modkit/httpkit"
	"posdash/internal/modkit/repokit"
	"posdash/internal/platform/config"
	"posdash/internal/platform/logger"
	phttp "posdash/internal/platform/net/http"
	"posdash/internal/platform/store"

	"posdash/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (POSDASH_API_*)
	root := config.New()
	apiCfg := root.Prefix("POSDASH_API_")
	upCfg := root.Prefix("UPSTREAM_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	rdsCfg := root.Prefix("SERVICE_REDIS_")     // rdsCfg lives under SERVICE_REDIS_*
	// bring up logging early
	l := logger.Get()

	// every backend is optional; the dashboard only needs the upstream
	pgOn := pgCfg.MayBool("ENABLED", false)
	chOn := chCfg.MayBool("ENABLED", false)
	rdsOn := rdsCfg.MayBool("ENABLED", false)
	scfg := store.Config{AppName: "posdash-api"}
	if pgOn {
		scfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),

			ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 3*time.Second),
		}
	}
	if chOn {
		scfg.CH = store.CHConfig{
			Enabled: true,
			URL:     chCfg.MustString("DBURL"),
			Tag:     "api",
		}
	}
	if rdsOn {
		scfg.RDS = store.RedisConfig{
			Enabled: true,
			URL:     rdsCfg.MustString("URL"),

			PingTimeout: rdsCfg.MayDuration("PING_TIMEOUT", 5*time.Second),
		}
	}

	st, err := store.Open(ctx, scfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(ctx, st)
	if err := api.EnsureSchema(ctx, st); err != nil {
		l.Panic().Err(err).Msg("schema setup failed")
	}

	upOpts := upstream.Options{
		BaseURL:    upCfg.MayURL("BASE_URL", "http://localhost:3001/api"),
		Timeout:    upCfg.MayDuration("TIMEOUT", 15*time.Second),
		MaxRetries: upCfg.MayInt("MAX_RETRIES", 2),
	}
	if st.Redis != nil {
		upOpts.Cache = upstream.NewCache(st.Redis, upCfg.MayDuration("CACHE_TTL", time.Minute))
	}
	up := upstream.NewClient(upOpts)

	// http server (reads POSDASH_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:   root,
			Store:    st,
			Logger:   l,
			Upstream: up,
			Stack: httpkit.StackOptions{
				CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"http://localhost:3000"}),
				SSLRedirect: apiCfg.MayBool("SSL_REDIRECT", false),
				Dev:         apiCfg.MayBool("DEV", true),
				Timeout:     apiCfg.MayDuration("TIMEOUT", 30*time.Second),
				Slow:        apiCfg.MayDuration("SLOW", 2*time.Second),
			},
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	l.Info().
		Str("upstream", up.BaseURL()).
		Bool("pg", pgOn).
		Bool("ch", chOn).
		Bool("redis", rdsOn).
		Msg("posdash api starting")

	// run until signalled
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
