// Package service contains saved view workflows
package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"posdash/internal/core/hierarchy"
	"posdash/internal/modkit/repokit"
	perr "posdash/internal/platform/errors"
	dash "posdash/internal/services/api/dashboard/domain"
	"posdash/internal/services/api/views/domain"
	"posdash/internal/services/api/views/repo"
)

// Service defines the views service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the views service
type Svc struct {
	Repo repo.Repo
	dash dash.ServicePort
}

// New constructs a views service; dashboard may be nil, which disables Run
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], dashboard dash.ServicePort) *Svc {
	if binder == nil {
		panic("views.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: repokit.MustBind(binder, db), dash: dashboard}
}

// Save creates the view or replaces the query of the view with the same name
func (s *Svc) Save(ctx context.Context, in domain.SaveInput) (domain.View, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.View{}, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "name is required"), "name")
	}
	row, err := encode(in.Query)
	if err != nil {
		return domain.View{}, err
	}
	row.ID = uuid.NewString()
	row.Name = name

	saved, err := s.Repo.Upsert(ctx, row)
	if err != nil {
		return domain.View{}, perr.FromPostgres(err, "views save")
	}
	return decode(saved)
}

// List returns views ordered by name
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.View, error) {
	rows, err := s.Repo.List(ctx, in.Limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "views list")
	}
	out := make([]domain.View, 0, len(rows))
	for _, r := range rows {
		v, err := decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Get returns one view
func (s *Svc) Get(ctx context.Context, in domain.IDInput) (domain.View, error) {
	row, ok, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return domain.View{}, perr.FromPostgres(err, "views get")
	}
	if !ok {
		return domain.View{}, perr.WithField(perr.NotFoundf("view %s not found", in.ID), "id")
	}
	return decode(row)
}

// Delete removes one view
func (s *Svc) Delete(ctx context.Context, in domain.IDInput) (domain.DeleteResult, error) {
	ok, err := s.Repo.Delete(ctx, in.ID)
	if err != nil {
		return domain.DeleteResult{}, perr.FromPostgres(err, "views delete")
	}
	if !ok {
		return domain.DeleteResult{}, perr.WithField(perr.NotFoundf("view %s not found", in.ID), "id")
	}
	return domain.DeleteResult{Deleted: true}, nil
}

// Run loads a view and runs its query as a dashboard batch
func (s *Svc) Run(ctx context.Context, in domain.IDInput) (dash.QueryResult, error) {
	if s.dash == nil {
		return dash.QueryResult{}, perr.Unavailablef("views: dashboard not wired")
	}
	v, err := s.Get(ctx, in)
	if err != nil {
		return dash.QueryResult{}, err
	}
	return s.dash.Query(ctx, v.Query)
}

// encode splits a query into the stored columns
// Page and seq belong to one request and are not kept.
func encode(q dash.QueryInput) (repo.Row, error) {
	filters := q.Filters
	if filters == nil {
		filters = map[string]hierarchy.Level{}
	}
	f, err := json.Marshal(filters)
	if err != nil {
		return repo.Row{}, perr.Wrapf(err, perr.ErrorCodeJSON, "views encode filters")
	}
	p, err := json.Marshal(nonNilState(q.Product))
	if err != nil {
		return repo.Row{}, perr.Wrapf(err, perr.ErrorCodeJSON, "views encode product")
	}
	st, err := json.Marshal(nonNilState(q.Store))
	if err != nil {
		return repo.Row{}, perr.Wrapf(err, perr.ErrorCodeJSON, "views encode store")
	}
	return repo.Row{
		View:       string(q.View.OrDefault()),
		TimePeriod: q.TimePeriod,
		Filters:    f,
		Product:    p,
		Store:      st,
		PageSize:   q.Size,
	}, nil
}

func decode(r repo.Row) (domain.View, error) {
	v := domain.View{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Query: dash.QueryInput{
			View:       dash.View(r.View),
			TimePeriod: r.TimePeriod,
			Size:       r.PageSize,
		},
	}
	if err := unmarshal(r.Filters, &v.Query.Filters); err != nil {
		return domain.View{}, err
	}
	if err := unmarshal(r.Product, &v.Query.Product); err != nil {
		return domain.View{}, err
	}
	if err := unmarshal(r.Store, &v.Query.Store); err != nil {
		return domain.View{}, err
	}
	return v, nil
}

func unmarshal(b []byte, dst any) error {
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "views decode stored query")
	}
	return nil
}

func nonNilState(s hierarchy.State) hierarchy.State {
	if s == nil {
		return hierarchy.State{}
	}
	return s
}

var _ Service = (*Svc)(nil)
