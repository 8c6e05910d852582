// Package middleware holds the chi wrappers and the in house middleware
package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"posdash/internal/platform/logger"
	pnet "posdash/internal/platform/net"
)

// AccessLogOptions configures the access log
type AccessLogOptions struct {
	// Slow logs requests at or above it at warn, zero disables
	Slow time.Duration
}

// AccessLogZerolog logs one line per request through the request scoped logger
// The route pattern is logged next to the path so dashboards group by endpoint.
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			r = r.WithContext(logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), ""))
			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			l := logger.C(r.Context())
			evt := l.Info()
			switch {
			case status >= http.StatusInternalServerError:
				evt = l.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = l.Warn().Bool("slow", true)
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				evt = evt.Str("route", rc.RoutePattern())
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}
