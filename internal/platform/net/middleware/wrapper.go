package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	perr "posdash/internal/platform/errors"
	"posdash/internal/platform/logger"
	pnet "posdash/internal/platform/net"
	phttp "posdash/internal/platform/net/http"
	pstrings "posdash/internal/platform/strings"
)

// Thin chi wrappers so callers never import chi middleware directly

func RequestID() func(http.Handler) http.Handler              { return chimw.RequestID }
func RealIP() func(http.Handler) http.Handler                 { return chimw.RealIP }
func NoCache() func(http.Handler) http.Handler                { return chimw.NoCache }
func RedirectSlashes() func(http.Handler) http.Handler        { return chimw.RedirectSlashes }
func StripSlashes() func(http.Handler) http.Handler           { return chimw.StripSlashes }
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }
func Heartbeat(path string) func(http.Handler) http.Handler   { return chimw.Heartbeat(path) }

// Compress negotiates gzip or deflate at level
func Compress(level int) func(http.Handler) http.Handler {
	return chimw.NewCompressor(level).Handler
}

// CORSOptions is the part of go-chi/cors the api configures
// Empty methods and headers fall back to what the dashboard client sends.
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Accept", "Content-Type", "X-Request-ID", SessionHeader, SeqHeader}
)

func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   o.ExposedHeaders,
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// RateLimit allows requests per window per client ip and answers a 429 envelope past that
// requests <= 0 disables limiting.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			err := perr.Newf(perr.ErrorCodeTooManyRequests, "more than %d requests in %s", requests, window)
			status, env := pnet.Error(err, pnet.RequestID(r.Context()))
			phttp.JSON(w, status, env)
		}),
	)
}

// SecureOptions is the part of unrolled/secure the api configures
type SecureOptions struct {
	SSLRedirect bool
	// ContentSecurityPolicy defaults to default-src 'self'
	ContentSecurityPolicy string
	// Dev skips host and ssl checks for local runs
	Dev bool
}

// Secure sets the browser hardening headers and blocks requests secure rejects
func Secure(o SecureOptions) func(http.Handler) http.Handler {
	csp := o.ContentSecurityPolicy
	if csp == "" {
		csp = "default-src 'self'"
	}
	s := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: csp,
		SSLRedirect:           o.SSLRedirect,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         o.Dev,
	})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := s.Process(w, r); err != nil {
				logger.C(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("secure headers blocked request")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
