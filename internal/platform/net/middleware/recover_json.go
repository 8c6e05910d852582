package middleware

import (
	"net/http"
	"runtime/debug"

	perr "posdash/internal/platform/errors"
	"posdash/internal/platform/logger"
	pnet "posdash/internal/platform/net"
	phttp "posdash/internal/platform/net/http"
)

// RecoverJSON turns a panic into a 500 envelope and logs the stack
// http.ErrAbortHandler is re-panicked so net/http can drop the connection.
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, env := pnet.Error(perr.PanicErrf("internal error"), reqID)
			phttp.JSON(w, status, env)
		}()
		next.ServeHTTP(w, r)
	})
}
