// Package store opens the optional backends: postgres for saved views,
// clickhouse for the query log and redis for the upstream cache.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"posdash/internal/platform/logger"
)

// Store holds whichever backends are enabled; the rest stay nil
// The zero value is usable and holds nothing.
type Store struct {
	Log   logger.Logger
	PG    TxRunner
	CH    Clickhouse
	Redis *redis.Client
}

// Row is a single scannable result
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set; Close must be called
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos bind to, either a pool or a transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn inside one transaction
// fn's error rolls back; a nil return commits.
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam used by the query log
type Clickhouse interface {
	Insert(ctx context.Context, table string, data any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Close() error
}

// Pinger is any backend that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Option adjusts a Store before any backend is opened
type Option func(*Store) error

// WithLogger routes backend logs, including the sql trace, through log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error { s.Log = log; return nil }
}

// Open connects every backend enabled in cfg, in the order postgres, clickhouse, redis
// A failure closes what was already opened.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Str("component", "store").Logger()

	steps := []struct {
		on   bool
		open func() error
	}{
		{cfg.PG.Enabled, func() (err error) { s.PG, err = openPG(ctx, cfg, s); return }},
		{cfg.CH.Enabled, func() (err error) { s.CH, err = openCH(ctx, cfg, s); return }},
		{cfg.RDS.Enabled, func() (err error) { s.Redis, err = openRedis(ctx, cfg); return }},
	}
	for _, st := range steps {
		if !st.on {
			continue
		}
		if err := st.open(); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

type backend struct {
	name  string
	ping  func(context.Context) error
	close func() error
}

func (s *Store) backends() []backend {
	var out []backend
	if s.PG != nil {
		b := backend{name: "pg"}
		if p, ok := s.PG.(Pinger); ok {
			b.ping = p.Ping
		}
		if c, ok := s.PG.(interface{ Close() error }); ok {
			b.close = c.Close
		}
		out = append(out, b)
	}
	if s.CH != nil {
		b := backend{name: "ch", close: s.CH.Close}
		if p, ok := s.CH.(Pinger); ok {
			b.ping = p.Ping
		}
		out = append(out, b)
	}
	if s.Redis != nil {
		rdb := s.Redis
		out = append(out, backend{
			name:  "redis",
			ping:  func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			close: rdb.Close,
		})
	}
	return out
}

// Guard pings every open backend and joins the failures, each prefixed with its name
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, b := range s.backends() {
		if b.ping == nil {
			continue
		}
		if err := b.ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close shuts backends down in reverse open order
func (s *Store) Close(context.Context) error {
	bs := s.backends()
	var errs []error
	for i := len(bs) - 1; i >= 0; i-- {
		if bs[i].close == nil {
			continue
		}
		if err := bs[i].close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", bs[i].name, err))
		}
	}
	return errors.Join(errs...)
}
