// @title         datax API
// @version       1.0
// @description   Filter, aggregate and annotate article coverage time series
// @BasePath      /api/v1

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"datax/internal/core/version"
	"datax/internal/modkit/httpkit"
	"datax/internal/platform/config"
	"datax/internal/platform/logger"
	phttp "datax/internal/platform/net/http"
	"datax/internal/platform/store"

	"datax/internal/services/api"
)

func main() {
	loaded, err := config.LoadDotenv()

	root := config.New()
	apiCfg := root.Prefix("DATAX_API_")
	pgCfg := root.Prefix("DATAX_PG_")
	chCfg := root.Prefix("DATAX_CH_")

	l := logger.Get()
	if err != nil {
		l.Fatal().Err(err).Msg("load .env")
	}
	l.Info().Strs("env_files", loaded).Str("version", version.Short()).Msg("starting datax-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// SQL backends are optional; sources naming the same DSN read through these
	// pools and /meta/ready probes them
	pgURL, chURL := pgCfg.MayString("DBURL", ""), chCfg.MayString("DBURL", "")
	st, err := store.Open(ctx,
		store.Config{
			AppName: "datax-api",
			PG: store.PGConfig{
				Enabled:     pgURL != "",
				URL:         pgURL,
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled: chURL != "",
				URL:     chURL,
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if b := st.Backends(); len(b) > 0 {
		gctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := st.Guard(gctx); err != nil {
			// sources can come back later; /meta/ready reports the state
			l.Warn().Err(err).Strs("backends", b).Msg("sql backends unreachable at startup")
		} else {
			l.Info().Strs("backends", b).Msg("sql backends reachable")
		}
		cancel()
	}

	srv := phttp.NewServer(apiCfg)
	if err := api.Mount(srv.Router(), api.Options{
		Config: root,
		Store:  st,
		Logger: *l,
		Stack: httpkit.StackOptions{
			Timeout: apiCfg.MayDuration("REQUEST_TIMEOUT", 60*time.Second),
			Slow:    apiCfg.MayDuration("SLOW_REQUEST", 2*time.Second),
			Origins: apiCfg.MayCSV("CORS_ORIGINS", nil),
		},
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
	}); err != nil {
		l.Fatal().Err(err).Msg("mount api")
	}

	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
}
