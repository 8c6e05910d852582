// Package http serves the meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"posdash/internal/core/version"
	"posdash/internal/modkit/httpkit"
	ptime "posdash/internal/platform/time"
)

// readyTimeout bounds the whole readiness probe
const readyTimeout = 2 * time.Second

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies
// Optional backends are nil when disabled and report skipped; values
// without a Ping method report unknown.
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Clock       ptime.Clock
	PG          any
	CH          any
	Cache       any
	// Upstream is the POS backend; the service is useless without it
	Upstream any
}

type handlers struct{ d Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := handlers{d: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", h.service)
}

func (h handlers) stamp() string { return h.d.Clock.Or()().UTC().Format(time.RFC3339) }

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"posdash-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck is one dependency probe
type ReadyCheck struct {
	Name   string `json:"name"            example:"upstream"`
	Status string `json:"status"          example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:3001: connect: connection refused"`
}

// ReadyResponse is ok, degraded when an optional store fails, or fail without the POS backend
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse is the service name and uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"posdash-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.d.ServiceName,
		Started: h.d.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.stamp(),
	}, nil
}

// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	targets := []struct {
		name string
		dep  any
	}{
		{"upstream", h.d.Upstream},
		{"pg", h.d.PG},
		{"ch", h.d.CH},
		{"redis", h.d.Cache},
	}
	checks := make([]ReadyCheck, len(targets))
	var g errgroup.Group
	for i, tg := range targets {
		g.Go(func() error {
			checks[i] = probe(ctx, tg.name, tg.dep)
			return nil
		})
	}
	_ = g.Wait()

	out := ReadyResponse{Status: "ok", Checks: checks, Now: h.stamp()}
	for _, c := range checks[1:] {
		if c.Status == "fail" {
			out.Status = "degraded"
		}
	}
	if checks[0].Status != "ok" {
		out.Status = "fail"
	}
	return out, nil
}

func probe(ctx context.Context, name string, dep any) ReadyCheck {
	if dep == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	p, ok := dep.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: "unknown"}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	now := h.d.Clock.Or()()
	return ServiceResponse{
		Name:    h.d.ServiceName,
		Started: h.d.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.d.StartedAt) / time.Second),
	}, nil
}
