// Package module mounts the meta endpoints: health, readiness and version
package module

import (
	"time"

	"posdash/internal/core/version"
	"posdash/internal/modkit"
	metahttp "posdash/internal/services/api/meta/http"
)

// Module serves /meta
type Module struct {
	b  modkit.Built
	hd metahttp.Deps
}

// Ports carries the probes meta cannot find on modkit.Deps
// Leave a field nil to report it as skipped.
type Ports struct {
	Upstream metahttp.Pinger
	Cache    metahttp.Pinger
}

func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	in := modkit.Injected[Ports](b)

	hd := metahttp.Deps{
		ServiceName: version.Service,
		StartedAt:   time.Now(),
		PG:          deps.PG,
		CH:          deps.CH,
	}
	// typed nils would read as configured probes
	if in.Upstream != nil {
		hd.Upstream = in.Upstream
	}
	if in.Cache != nil {
		hd.Cache = in.Cache
	}
	return &Module{b: b, hd: hd}
}

func (m *Module) Name() string { return m.b.Name }

func (m *Module) MountRoutes(r modkit.Router) {
	m.b.Mount(r, func(rr modkit.Router) { metahttp.Register(rr, m.hd) })
}

// Ports is nil; nothing depends on meta
func (m *Module) Ports() any { return nil }
