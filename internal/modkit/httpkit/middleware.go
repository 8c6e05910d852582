package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "posdash/internal/platform/net/http"
	"posdash/internal/platform/net/middleware"
)

// StackOptions tunes the shared middleware slice
type StackOptions struct {
	// CORSOrigins lists browser origins allowed to call the api, empty allows none
	CORSOrigins []string
	// SSLRedirect forces https through unrolled/secure
	SSLRedirect bool
	// Dev relaxes secure host checks for local runs
	Dev bool
	// Timeout bounds each request, 30s when zero
	Timeout time.Duration
	// Slow marks access log lines at warn level, 0 disables
	Slow time.Duration
}

// CommonStack returns a baseline per module middleware slice
// compose with per module limits in the module itself
func CommonStack() []func(http.Handler) http.Handler {
	return StackFor(StackOptions{})
}

// StackFor is CommonStack with knobs from config
func StackFor(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,
		middleware.Secure(middleware.SecureOptions{SSLRedirect: o.SSLRedirect, Dev: o.Dev}),

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(timeout),

		// dashboard tab ordering
		Session(),
	}
}

// Session wires the session header middleware to the platform JSON writer
func Session() func(http.Handler) http.Handler {
	return middleware.Session(phttp.JSON)
}

// RateLimit caps requests per client ip for a module
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return middleware.RateLimit(requests, window)
}
