// Package repo provides postgres access for saved views
package repo

import (
	"context"
	"errors"
	"time"

	"posdash/internal/modkit/repokit"
	perr "posdash/internal/platform/errors"
	"posdash/internal/platform/store"
)

// Schema creates the views table
const Schema = `
create table if not exists dashboard_views (
	id          uuid primary key,
	name        text not null unique,
	view        text not null default 'sales',
	time_period text not null default '',
	filters     jsonb not null default '{}'::jsonb,
	product     jsonb not null default '[]'::jsonb,
	store       jsonb not null default '[]'::jsonb,
	page_size   int not null default 0,
	created_at  timestamptz not null default now(),
	updated_at  timestamptz not null default now()
)`

// Repo is the minimal persistence surface for views
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Upsert(ctx context.Context, r Row) (Row, error)
	List(ctx context.Context, limit int) ([]Row, error)
	Get(ctx context.Context, id string) (Row, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Row is one stored view; json columns are raw
type Row struct {
	ID         string
	Name       string
	View       string
	TimePeriod string
	Filters    []byte
	Product    []byte
	Store      []byte
	PageSize   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type (
	// PG binds the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the postgres repo
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const cols = `id::text, name, view, time_period, filters, product, store, page_size, created_at, updated_at`

func (r *queries) EnsureSchema(ctx context.Context) error {
	_, err := r.q.Exec(ctx, Schema)
	return err
}

// Upsert keeps the id and created_at of an existing view with the same name
func (r *queries) Upsert(ctx context.Context, in Row) (Row, error) {
	const sql = `
insert into dashboard_views (id, name, view, time_period, filters, product, store, page_size)
values ($1, $2, $3, $4, $5, $6, $7, $8)
on conflict (name) do update set
	view = excluded.view,
	time_period = excluded.time_period,
	filters = excluded.filters,
	product = excluded.product,
	store = excluded.store,
	page_size = excluded.page_size,
	updated_at = now()
returning ` + cols
	return scan(r.q.QueryRow(ctx, sql, in.ID, in.Name, in.View, in.TimePeriod, in.Filters, in.Product, in.Store, in.PageSize))
}

func (r *queries) List(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return store.Many(ctx, r.q, scan, `select `+cols+` from dashboard_views order by name limit $1`, limit)
}

func (r *queries) Get(ctx context.Context, id string) (Row, bool, error) {
	row, err := store.One(ctx, r.q, scan, `select `+cols+` from dashboard_views where id = $1`, id)
	if errors.Is(err, perr.ErrNotFound) {
		return Row{}, false, nil
	}
	if err != nil {
		return Row{}, false, err
	}
	return row, true, nil
}

func (r *queries) Delete(ctx context.Context, id string) (bool, error) {
	n, err := store.Affected(ctx, r.q, `delete from dashboard_views where id = $1`, id)
	return n > 0, err
}

func scan(s store.Row) (Row, error) {
	var r Row
	err := s.Scan(&r.ID, &r.Name, &r.View, &r.TimePeriod, &r.Filters, &r.Product, &r.Store, &r.PageSize, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}
