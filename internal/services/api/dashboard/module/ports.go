package module

import (
	"context"

	"posdash/internal/core/hierarchy"
	"posdash/internal/services/api/dashboard/domain"
	dsvc "posdash/internal/services/api/dashboard/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptDashboardPort struct{ svc dsvc.Service }

var _ domain.ServicePort = adaptDashboardPort{}

func (a adaptDashboardPort) Options(ctx context.Context) (domain.OptionsResult, error) {
	return a.svc.Options(ctx)
}

func (a adaptDashboardPort) Periods(ctx context.Context) ([]domain.PeriodInfo, error) {
	return a.svc.Periods(ctx)
}

func (a adaptDashboardPort) Hierarchy(ctx context.Context, in domain.HierarchyInput) (hierarchy.Menu, error) {
	return a.svc.Hierarchy(ctx, in)
}

func (a adaptDashboardPort) Select(ctx context.Context, in domain.SelectInput) (domain.SelectResult, error) {
	return a.svc.Select(ctx, in)
}

func (a adaptDashboardPort) SelectNode(ctx context.Context, in domain.SelectNodeInput) (domain.SelectResult, error) {
	return a.svc.SelectNode(ctx, in)
}

// Query runs one dashboard batch; other modules use it to replay saved views
func (a adaptDashboardPort) Query(ctx context.Context, in domain.QueryInput) (domain.QueryResult, error) {
	return a.svc.Query(ctx, in)
}

func (a adaptDashboardPort) History(ctx context.Context) ([]domain.HistoryRow, error) {
	return a.svc.History(ctx)
}
