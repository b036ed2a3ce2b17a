// Package api provides the HTTP API for the application
package api

import (
	"datax/internal/platform/config"
	"datax/internal/platform/logger"
	"datax/internal/platform/metrics"
	phttp "datax/internal/platform/net/http"
	"datax/internal/platform/store"

	"datax/internal/modkit"
	"datax/internal/modkit/httpkit"
	"datax/internal/modkit/swaggerkit"

	covmod "datax/internal/services/api/coverage/module"
	metamod "datax/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         logger.Logger
	Stack          httpkit.StackOptions
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts every module under /api/v1 plus the optional docs, pprof and /metrics
func Mount(r phttp.Router, opt Options) error {
	deps := modkit.Deps{
		Log:   opt.Logger,
		Cfg:   opt.Config,
		Store: opt.Store,
	}

	cov, err := covmod.New(deps)
	if err != nil {
		return err
	}
	mods := []modkit.Module{
		metamod.New(deps),
		cov,
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range mods {
			opt.Logger.Debug().Str("module", m.Name()).Msg("mounting module")
			m.MountRoutes(api)
		}
	})
	return nil
}
