package domain

import (
	"context"

	"posdash/internal/core/hierarchy"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Options(ctx context.Context) (OptionsResult, error)
	Periods(ctx context.Context) ([]PeriodInfo, error)
	Hierarchy(ctx context.Context, in HierarchyInput) (hierarchy.Menu, error)
	Select(ctx context.Context, in SelectInput) (SelectResult, error)
	SelectNode(ctx context.Context, in SelectNodeInput) (SelectResult, error)
	Query(ctx context.Context, in QueryInput) (QueryResult, error)
	History(ctx context.Context) ([]HistoryRow, error)
}
