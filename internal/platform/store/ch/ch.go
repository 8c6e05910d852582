// Package ch provides a clickhouse client over clickhouse-go native protocol
package ch

import (
	"context"
	"strings"
	"time"

	perr "posdash/internal/platform/errors"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
type Config struct {
	URL string

	// Role and Tag end up in system.query_log client info
	Role string
	Tag  string

	// PingTimeout bounds the connect check in Open, 5s when zero
	PingTimeout time.Duration
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// CH wraps a native clickhouse connection
type CH struct {
	conn driver.Conn
}

// Open parses the dsn, dials, and pings once
func Open(ctx context.Context, cfg Config) (*CH, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, perr.InvalidArgf("clickhouse url is required")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "clickhouse dsn parse failed")
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, cfg.Tag)

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "clickhouse open failed")
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := conn.Ping(pctx); err != nil {
		_ = conn.Close()
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "clickhouse ping failed")
	}
	return &CH{conn: conn}, nil
}

func (c *CH) live() (driver.Conn, error) {
	if c == nil || c.conn == nil {
		return nil, perr.Unavailablef("clickhouse not connected")
	}
	return c.conn, nil
}

// Insert sends rows to table as one batch; an empty slice is a no-op
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	conn, err := c.live()
	if err != nil || len(rows) == 0 {
		return err
	}
	batch, err := conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "clickhouse prepare %s", table)
	}
	for i, r := range rows {
		if err := batch.Append(r...); err != nil {
			_ = batch.Abort()
			return perr.Wrapf(err, perr.ErrorCodeDB, "clickhouse append %s row %d", table, i)
		}
	}
	if err := batch.Send(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "clickhouse send %s", table)
	}
	return nil
}

func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	conn, err := c.live()
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "clickhouse query")
	}
	return rows, nil
}

// Exec runs a statement without a result set, DDL mostly
func (c *CH) Exec(ctx context.Context, sql string, args ...any) error {
	conn, err := c.live()
	if err != nil {
		return err
	}
	if err := conn.Exec(ctx, sql, args...); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "clickhouse exec")
	}
	return nil
}

func (c *CH) Ping(ctx context.Context) error {
	conn, err := c.live()
	if err != nil {
		return err
	}
	return conn.Ping(ctx)
}

// Close is a no-op on a client that never connected
func (c *CH) Close() error {
	conn, err := c.live()
	if err != nil {
		return nil
	}
	return conn.Close()
}
