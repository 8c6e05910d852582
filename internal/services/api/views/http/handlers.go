// Package http provides http transport for saved views
package http

import (
	stdhttp "net/http"

	"posdash/internal/modkit/httpkit"
	"posdash/internal/services/api/views/domain"
	svc "posdash/internal/services/api/views/service"
)

// Register mounts view endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SaveInput](r, "/save", h.save)
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
	httpkit.PostJSON[domain.IDInput](r, "/get", h.get)
	httpkit.PostJSON[domain.IDInput](r, "/delete", h.delete)
	httpkit.PostJSON[domain.IDInput](r, "/run", h.run)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /views/save Views viewsSave
// @Summary Save a named dashboard query
// @Description Saving an existing name replaces its query and keeps its id.
// @Tags Views
// @Accept json
// @Produce json
// @Param payload body domain.SaveInput true "View"
// @Success 200 {object} domain.View "ok"
// @Failure 400 {object} httpkit.Envelope "validation failed"
// @Router /views/save [post]
func (h *handlers) save(r *stdhttp.Request, in domain.SaveInput) (any, error) {
	return h.svc.Save(r.Context(), in)
}

// @Summary List saved views
// @Tags Views
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Paging"
// @Success 200 {array} domain.View "ok"
// @Router /views/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

// @Summary Get a saved view
// @Tags Views
// @Accept json
// @Produce json
// @Param payload body domain.IDInput true "View id"
// @Success 200 {object} domain.View "ok"
// @Failure 404 {object} httpkit.Envelope "no such view"
// @Router /views/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.IDInput) (any, error) {
	return h.svc.Get(r.Context(), in)
}

// @Summary Delete a saved view
// @Tags Views
// @Accept json
// @Produce json
// @Param payload body domain.IDInput true "View id"
// @Success 200 {object} domain.DeleteResult "ok"
// @Failure 404 {object} httpkit.Envelope "no such view"
// @Router /views/delete [post]
func (h *handlers) delete(r *stdhttp.Request, in domain.IDInput) (any, error) {
	return h.svc.Delete(r.Context(), in)
}

// @Summary Run a saved view as a dashboard batch
// @Description Session and sequence headers apply as for /dashboard/query.
// @Tags Views
// @Accept json
// @Produce json
// @Param payload body domain.IDInput true "View id"
// @Success 200 {object} object "same shape as /dashboard/query"
// @Failure 404 {object} httpkit.Envelope "no such view"
// @Failure 409 {object} httpkit.Envelope "superseded by a newer batch"
// @Router /views/run [post]
func (h *handlers) run(r *stdhttp.Request, in domain.IDInput) (any, error) {
	return h.svc.Run(r.Context(), in)
}
