// Package module mounts the dashboard: period resolution, hierarchy menus and batch queries
package module

import (
	"posdash/internal/core/batchseq"
	"posdash/internal/modkit"
	"posdash/internal/modkit/httpkit"
	dhttp "posdash/internal/services/api/dashboard/http"
	drepo "posdash/internal/services/api/dashboard/repo"
	dsvc "posdash/internal/services/api/dashboard/service"
)

// Module serves /dashboard
type Module struct {
	b     modkit.Built
	svc   dsvc.Service
	ports any
}

// Ports declares what the dashboard needs injected
type Ports struct {
	Upstream dsvc.Upstream
}

// New builds the dashboard; it panics without an Upstream port
// The query log is skipped when deps.CH is nil.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	cfg := FromConfig(deps.Cfg)
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("dashboard"),
		modkit.WithPrefix("/dashboard"),
		modkit.WithMiddlewares(httpkit.RateLimit(cfg.RateLimit, cfg.RateWindow)),
	}, opts...)...)

	up := modkit.Injected[Ports](b).Upstream
	if up == nil {
		panic("dashboard API module requires an Upstream port")
	}

	svc := dsvc.New(up, drepo.NewCH(deps.CH), dsvc.Options{
		Seq:        batchseq.New(batchseq.Options{Idle: cfg.SeqIdle}),
		LogTimeout: cfg.LogTimeout,
	})
	return &Module{b: b, svc: svc, ports: adaptDashboardPort{svc: svc}}
}

func (m *Module) Name() string { return m.b.Name }

func (m *Module) MountRoutes(r modkit.Router) {
	m.b.Mount(r, func(rr modkit.Router) { dhttp.Register(rr, m.svc) })
}
