// Package repo records dashboard query batches in clickhouse
package repo

import (
	"context"
	"time"

	perr "posdash/internal/platform/errors"
	"posdash/internal/platform/store"
)

// Table is the query log table
const Table = "dashboard_query_log"

// Schema creates the query log table
const Schema = `
CREATE TABLE IF NOT EXISTS dashboard_query_log (
	ts         DateTime64(3, 'UTC'),
	session    String,
	seq        UInt64,
	view       LowCardinality(String),
	period     LowCardinality(String),
	filters    String,
	status     LowCardinality(String),
	code       UInt16,
	elapsed_ms Int64,
	rows       Int64
) ENGINE = MergeTree
ORDER BY (session, ts)
TTL toDateTime(ts) + INTERVAL 30 DAY`

// Repo is the minimal persistence surface for the dashboard
type Repo interface {
	EnsureSchema(ctx context.Context) error
	LogQuery(ctx context.Context, e QueryLog) error
	Recent(ctx context.Context, session string, limit int) ([]QueryLog, error)
}

// QueryLog is one finished batch
type QueryLog struct {
	At        time.Time
	Session   string
	Seq       uint64
	View      string
	Period    string
	Filters   string
	Status    string
	Code      uint16
	ElapsedMS int64
	Rows      int64
}

// Batch outcomes
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusSuperseded = "superseded"
)

type (
	chRepo   struct{ ch store.Clickhouse }
	noopRepo struct{}
)

// NewCH returns a clickhouse backed repo, or a noop one when ch is nil
func NewCH(ch store.Clickhouse) Repo {
	if ch == nil {
		return noopRepo{}
	}
	return &chRepo{ch: ch}
}

// Noop returns a repo that records nothing
func Noop() Repo { return noopRepo{} }

func (r *chRepo) EnsureSchema(ctx context.Context) error {
	if err := r.ch.Exec(ctx, Schema); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "dashboard create query log")
	}
	return nil
}

func (r *chRepo) LogQuery(ctx context.Context, e QueryLog) error {
	row := []any{e.At.UTC(), e.Session, e.Seq, e.View, e.Period, e.Filters, e.Status, e.Code, e.ElapsedMS, e.Rows}
	if err := r.ch.Insert(ctx, Table, [][]any{row}); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "dashboard log query")
	}
	return nil
}

func (r *chRepo) Recent(ctx context.Context, session string, limit int) ([]QueryLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	// newest first
	const sql = `
select ts, session, seq, view, period, filters, status, code, elapsed_ms, rows
from dashboard_query_log
where session = ?
order by ts desc, seq desc
limit ?`
	rows, err := r.ch.Query(ctx, sql, session, limit)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "dashboard recent queries")
	}
	defer rows.Close()

	var out []QueryLog
	for rows.Next() {
		var e QueryLog
		if err := rows.Scan(&e.At, &e.Session, &e.Seq, &e.View, &e.Period, &e.Filters, &e.Status, &e.Code, &e.ElapsedMS, &e.Rows); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "dashboard scan query log")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "dashboard iterate query log")
	}
	return out, nil
}

func (noopRepo) EnsureSchema(context.Context) error { return nil }

func (noopRepo) LogQuery(context.Context, QueryLog) error { return nil }

func (noopRepo) Recent(context.Context, string, int) ([]QueryLog, error) { return nil, nil }
