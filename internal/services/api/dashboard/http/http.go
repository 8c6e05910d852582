// Package http provides http transport for the dashboard
package http

import (
	stdhttp "net/http"

	"posdash/internal/modkit/httpkit"
	"posdash/internal/services/api/dashboard/domain"
	svc "posdash/internal/services/api/dashboard/service"
)

// Register mounts dashboard endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/options", h.options)
	httpkit.Get(r, "/periods", h.periods)
	httpkit.Get(r, "/history", h.history)

	// hierarchy menus and selection
	httpkit.PostJSON[domain.HierarchyInput](r, "/hierarchy", h.hierarchy)
	httpkit.PostJSON[domain.SelectInput](r, "/hierarchy/select", h.selectLevel)
	httpkit.PostJSON[domain.SelectNodeInput](r, "/hierarchy/select-node", h.selectNode)

	// one full dashboard refresh
	httpkit.PostJSON[domain.QueryInput](r, "/query", h.query)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /dashboard/options Dashboard dashboardOptions
// @Summary Filter options, periods and views
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.OptionsResult "ok"
// @Failure 503 {object} httpkit.Envelope "upstream unavailable"
// @Router /dashboard/options [get]
func (h *handlers) options(r *stdhttp.Request) (any, error) {
	return h.svc.Options(r.Context())
}

// swagger:route GET /dashboard/periods Dashboard dashboardPeriods
// @Summary Every period with its label and resolved interval
// @Tags Dashboard
// @Produce json
// @Success 200 {array} domain.PeriodInfo "ok"
// @Router /dashboard/periods [get]
func (h *handlers) periods(r *stdhttp.Request) (any, error) {
	return h.svc.Periods(r.Context())
}

// swagger:route GET /dashboard/history Dashboard dashboardHistory
// @Summary Recent batches for the calling session
// @Tags Dashboard
// @Produce json
// @Param X-Dashboard-Session header string false "client session id"
// @Success 200 {array} domain.HistoryRow "ok"
// @Router /dashboard/history [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	return h.svc.History(r.Context())
}

// swagger:route POST /dashboard/hierarchy Dashboard dashboardHierarchy
// @Summary Rendered hierarchy menu
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.HierarchyInput true "Kind and selection"
// @Success 200 {object} hierarchy.Menu "ok"
// @Router /dashboard/hierarchy [post]
func (h *handlers) hierarchy(r *stdhttp.Request, in domain.HierarchyInput) (any, error) {
	return h.svc.Hierarchy(r.Context(), in)
}

// swagger:route POST /dashboard/hierarchy/select Dashboard dashboardSelect
// @Summary Set one selection level
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.SelectInput true "Selection change"
// @Success 200 {object} domain.SelectResult "ok"
// @Failure 422 {object} httpkit.Envelope "level out of range"
// @Router /dashboard/hierarchy/select [post]
func (h *handlers) selectLevel(r *stdhttp.Request, in domain.SelectInput) (any, error) {
	return h.svc.Select(r.Context(), in)
}

// swagger:route POST /dashboard/hierarchy/select-node Dashboard dashboardSelectNode
// @Summary Click a menu node
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.SelectNodeInput true "Node path"
// @Success 200 {object} domain.SelectResult "ok"
// @Failure 404 {object} httpkit.Envelope "unknown path"
// @Router /dashboard/hierarchy/select-node [post]
func (h *handlers) selectNode(r *stdhttp.Request, in domain.SelectNodeInput) (any, error) {
	return h.svc.SelectNode(r.Context(), in)
}

// swagger:route POST /dashboard/query Dashboard dashboardQuery
// @Summary One dashboard batch: cards, charts and a page of transactions
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param X-Dashboard-Session header string false "client session id"
// @Param X-Dashboard-Seq header integer false "batch sequence"
// @Param payload body domain.QueryInput true "Query"
// @Success 200 {object} domain.QueryResult "ok"
// @Failure 409 {object} httpkit.Envelope "superseded by a newer batch"
// @Failure 503 {object} httpkit.Envelope "upstream unavailable"
// @Router /dashboard/query [post]
func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	return h.svc.Query(r.Context(), in)
}
