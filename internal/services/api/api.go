// Package api provides the HTTP API for the application
package api

import (
	"context"

	"posdash/internal/adapters/upstream"
	"posdash/internal/platform/config"
	perr "posdash/internal/platform/errors"
	"posdash/internal/platform/logger"
	phttp "posdash/internal/platform/net/http"
	"posdash/internal/platform/store"

	"posdash/internal/modkit"
	"posdash/internal/modkit/httpkit"
	"posdash/internal/modkit/module"
	"posdash/internal/modkit/swaggerkit"

	dashdomain "posdash/internal/services/api/dashboard/domain"
	dashmod "posdash/internal/services/api/dashboard/module"
	dashrepo "posdash/internal/services/api/dashboard/repo"
	metamod "posdash/internal/services/api/meta/module"
	viewsmod "posdash/internal/services/api/views/module"
	viewsrepo "posdash/internal/services/api/views/repo"
)

// Options are the API options
type Options struct {
	// Config is the root view; modules apply their own prefixes
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Upstream       *upstream.Client
	Stack          httpkit.StackOptions
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	if opt.Upstream == nil {
		panic("api.Mount requires an upstream client")
	}
	st := opt.Store
	if st == nil {
		st = &store.Store{}
	}

	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  st.PG,
		CH:  st.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	dashboard := dashmod.New(deps, modkit.WithPorts(dashmod.Ports{Upstream: opt.Upstream}))

	meta := metamod.Ports{Upstream: opt.Upstream}
	if c := opt.Upstream.Cache(); c != nil {
		meta.Cache = c
	}

	mods := []modkit.Module{
		metamod.New(deps, modkit.WithPorts(meta)),
		dashboard,
	}

	// saved views live in postgres and replay through the dashboard port
	if st.PG != nil {
		mods = append(mods, viewsmod.New(deps, modkit.WithPorts(viewsmod.Ports{
			Dashboard: module.MustPortsOf[dashdomain.ServicePort](dashboard),
		})))
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.StackFor(opt.Stack), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			deps.Log.Debug().Str("module", m.Name()).Msg("mounting api module")
			m.MountRoutes(api)
		}
	})
}

// EnsureSchema creates the tables owned by the API when their store is enabled
func EnsureSchema(ctx context.Context, st *store.Store) error {
	if st == nil {
		return nil
	}
	if st.CH != nil {
		if err := dashrepo.NewCH(st.CH).EnsureSchema(ctx); err != nil {
			return perr.Wrap(err, perr.CodeOf(err), "ensure query log schema")
		}
	}
	if st.PG != nil {
		err := st.PG.Tx(ctx, func(q store.RowQuerier) error {
			return viewsrepo.NewPG().Bind(q).EnsureSchema(ctx)
		})
		if err != nil {
			return perr.FromPostgres(err, "ensure views schema")
		}
	}
	return nil
}
