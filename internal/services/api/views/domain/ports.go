package domain

import (
	"context"

	dash "posdash/internal/services/api/dashboard/domain"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Save(ctx context.Context, in SaveInput) (View, error)
	List(ctx context.Context, in ListInput) ([]View, error)
	Get(ctx context.Context, in IDInput) (View, error)
	Delete(ctx context.Context, in IDInput) (DeleteResult, error)
	Run(ctx context.Context, in IDInput) (dash.QueryResult, error)
}
