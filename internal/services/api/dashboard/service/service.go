// Package service contains dashboard workflows
package service

import (
	"context"
	"time"

	"posdash/internal/adapters/upstream"
	"posdash/internal/core/batchseq"
	"posdash/internal/core/hierarchy"
	"posdash/internal/core/period"
	perr "posdash/internal/platform/errors"
	"posdash/internal/platform/logger"
	ptime "posdash/internal/platform/time"
	"posdash/internal/services/api/dashboard/domain"
	"posdash/internal/services/api/dashboard/repo"
)

// Service defines the dashboard service contract
type Service interface {
	domain.ServicePort
}

// Upstream is the slice of the aggregation backend client the dashboard reads
type Upstream interface {
	Options(ctx context.Context) (upstream.FilterOptions, error)
	Summary(ctx context.Context, p upstream.Params) (upstream.Summary, error)
	Series(ctx context.Context, ep upstream.Endpoint, p upstream.Params) ([]upstream.Point, error)
	Transactions(ctx context.Context, p upstream.Params) ([]upstream.Transaction, error)
}

// Options tune Svc; zero values are fine
type Options struct {
	Clock ptime.Clock
	// Seq orders batches per session; a private tracker when nil
	Seq *batchseq.Tracker
	// LogTimeout bounds the best effort query log write
	LogTimeout time.Duration
}

// Svc implements the dashboard service
type Svc struct {
	Up   Upstream
	Repo repo.Repo

	seq        *batchseq.Tracker
	now        ptime.Clock
	logTimeout time.Duration
	log        logger.Logger
}

// New constructs a dashboard service
func New(up Upstream, r repo.Repo, o Options) *Svc {
	if up == nil {
		panic("dashboard.Service requires a non nil Upstream")
	}
	if r == nil {
		r = repo.Noop()
	}
	if o.Seq == nil {
		o.Seq = batchseq.New(batchseq.Options{})
	}
	if o.LogTimeout <= 0 {
		o.LogTimeout = 2 * time.Second
	}
	return &Svc{
		Up:         up,
		Repo:       r,
		seq:        o.Seq,
		now:        o.Clock.Or(),
		logTimeout: o.LogTimeout,
		log:        *logger.Named("dashboard"),
	}
}

// Options returns the filter bar option lists
func (s *Svc) Options(ctx context.Context) (domain.OptionsResult, error) {
	fo, err := s.Up.Options(ctx)
	if err != nil {
		return domain.OptionsResult{}, err
	}
	return domain.OptionsResult{
		Restaurants:      nonNil(fo.Restaurants),
		Products:         nonNil(fo.Products),
		Machines:         nonNil(fo.Machines),
		TransactionTypes: nonNil(fo.TransactionTypes),
		DeliveryChannels: nonNil(fo.DeliveryChannels),
		Pods:             nonNil(fo.Pods),
		OCEmails:         nonNil(fo.OCEmails),
		OMEmails:         nonNil(fo.OMEmails),
		Periods:          period.Options(),
		Default:          period.Default,
		Views:            domain.Views(),
	}, nil
}

// Periods resolves every period token against the current time
func (s *Svc) Periods(_ context.Context) ([]domain.PeriodInfo, error) {
	now := s.now()
	out := make([]domain.PeriodInfo, 0, len(period.All()))
	for _, t := range period.All() {
		out = append(out, periodInfo(t, now))
	}
	return out, nil
}

// History lists recent batches for the calling session
func (s *Svc) History(ctx context.Context) ([]domain.HistoryRow, error) {
	sid := sessionOf(ctx)
	if sid == "" {
		return []domain.HistoryRow{}, nil
	}
	rows, err := s.Repo.Recent(ctx, sid, 20)
	if err != nil {
		return nil, err
	}
	out := make([]domain.HistoryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.HistoryRow{
			At:        r.At,
			Seq:       r.Seq,
			View:      r.View,
			Period:    r.Period,
			Filters:   r.Filters,
			Status:    r.Status,
			Code:      r.Code,
			ElapsedMS: r.ElapsedMS,
			Rows:      r.Rows,
		})
	}
	return out, nil
}

func periodInfo(t period.Token, now time.Time) domain.PeriodInfo {
	return domain.PeriodInfo{Token: t, Label: t.Label(), Interval: period.Resolve(t, now)}
}

// tree builds the hierarchy for kind from the upstream records
func (s *Svc) tree(ctx context.Context, kind domain.Kind) (hierarchy.Schema, *hierarchy.Node, error) {
	schema, ok := kind.Schema()
	if !ok {
		return hierarchy.Schema{}, nil, perr.InvalidArgf("unknown hierarchy kind %q", kind)
	}
	fo, err := s.Up.Options(ctx)
	if err != nil {
		return hierarchy.Schema{}, nil, err
	}
	rows := fo.ProductHierarchy
	if kind == domain.KindStore {
		rows = fo.StoreHierarchy
	}
	records := hierarchy.Records(schema, rows)
	if n := hierarchy.Malformed(records); n > 0 {
		logger.C(ctx).Debug().Str("kind", string(kind)).Int("skipped", n).Msg("dashboard hierarchy records without id or name")
	}
	root, err := schema.Build(records)
	if err != nil {
		return hierarchy.Schema{}, nil, err
	}
	return schema, root, nil
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

// assert Svc implements Service
var _ Service = (*Svc)(nil)

// ErrSuperseded is returned by Query when a newer batch for the session won
var ErrSuperseded = batchseq.ErrSuperseded
