package module

import (
	"context"

	dash "posdash/internal/services/api/dashboard/domain"
	"posdash/internal/services/api/views/domain"
	viewssvc "posdash/internal/services/api/views/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptViewsPort struct{ svc viewssvc.Service }

var _ domain.ServicePort = adaptViewsPort{}

func (a adaptViewsPort) Save(ctx context.Context, in domain.SaveInput) (domain.View, error) {
	return a.svc.Save(ctx, in)
}

func (a adaptViewsPort) List(ctx context.Context, in domain.ListInput) ([]domain.View, error) {
	return a.svc.List(ctx, in)
}

func (a adaptViewsPort) Get(ctx context.Context, in domain.IDInput) (domain.View, error) {
	return a.svc.Get(ctx, in)
}

func (a adaptViewsPort) Delete(ctx context.Context, in domain.IDInput) (domain.DeleteResult, error) {
	return a.svc.Delete(ctx, in)
}

func (a adaptViewsPort) Run(ctx context.Context, in domain.IDInput) (dash.QueryResult, error) {
	return a.svc.Run(ctx, in)
}
