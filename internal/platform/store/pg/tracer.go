package pg

import (
	"context"
	"strings"

	"posdash/internal/platform/logger"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives every statement the store adapter runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs statements under component=pg
// Normal statements log at info so LOG_SQL works without lowering the root level;
// slow or failed ones log at warn.
func Tracer(root logger.Logger) QueryTracer {
	return logTracer{log: root.With().Str("component", "pg").Logger()}
}

type logTracer struct{ log logger.Logger }

func (l logTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := l.log.Info()
	if ev.Slow || ev.Err != nil {
		evt = l.log.Warn()
	}
	evt.Ctx(ctx).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", oneLine(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// oneLine collapses whitespace runs so multi line sql fits a log line
func oneLine(sql string) string { return strings.Join(strings.Fields(sql), " ") }
