// Package module mounts saved views
package module

import (
	"posdash/internal/modkit"
	dash "posdash/internal/services/api/dashboard/domain"
	viewshttp "posdash/internal/services/api/views/http"
	viewsrepo "posdash/internal/services/api/views/repo"
	viewssvc "posdash/internal/services/api/views/service"
)

// Module serves /views
type Module struct {
	b     modkit.Built
	svc   viewssvc.Service
	ports any
}

// Ports declares what views needs injected
// Dashboard is optional; without it /run answers 503.
type Ports struct {
	Dashboard dash.ServicePort
}

// New builds the views module; deps.PG must be set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("views"), modkit.WithPrefix("/views")}, opts...)...)

	svc := viewssvc.New(deps.PG, viewsrepo.NewPG(), modkit.Injected[Ports](b).Dashboard)
	return &Module{b: b, svc: svc, ports: adaptViewsPort{svc: svc}}
}

func (m *Module) Name() string { return m.b.Name }

func (m *Module) MountRoutes(r modkit.Router) {
	m.b.Mount(r, func(rr modkit.Router) { viewshttp.Register(rr, m.svc) })
}
