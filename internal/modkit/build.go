package modkit

import (
	"net/http"

	"posdash/internal/modkit/httpkit"
	str "posdash/internal/platform/strings"
)

// Router is the route seam modules mount on
type Router = httpkit.Router

// Built is the resolved option set; modules keep it and mount through it
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	extra func(Router)
}

// Build applies opts in order; a module passes its defaults first so callers win
// An empty name or a root prefix panics since both are wiring mistakes.
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:   str.MustString(c.name, "module name"),
		Prefix: str.MustPrefix(c.prefix),
		Mw:     append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:  c.ports,
		extra:  c.register,
	}
}

// Mount registers routes under the prefix behind the module middleware
func (b Built) Mount(r Router, routes func(Router)) {
	r.Route(b.Prefix, func(rr Router) {
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		routes(rr)
		if b.extra != nil {
			b.extra(rr)
		}
	})
}

// Injected returns the ports passed with WithPorts when they have type T
func Injected[T any](b Built) T {
	p, _ := b.Ports.(T)
	return p
}
