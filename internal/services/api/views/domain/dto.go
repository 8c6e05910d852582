// Package domain holds DTOs for saved dashboard views
package domain

import (
	"time"

	dash "posdash/internal/services/api/dashboard/domain"
)

// SaveInput creates or replaces the view called Name
type SaveInput struct {
	Name  string          `json:"name"  validate:"required,max=80" example:"South stores, this month"`
	Query dash.QueryInput `json:"query"`
}

// IDInput addresses one view
type IDInput struct {
	ID string `json:"id" validate:"required,uuid" example:"6f1c2b8e-3c9a-4c43-9a51-0a6b9f1f2d11"`
}

// ListInput pages through views by name
type ListInput struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}

// View is a named dashboard query
type View struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Query     dash.QueryInput `json:"query"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DeleteResult reports whether a view was removed
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}
