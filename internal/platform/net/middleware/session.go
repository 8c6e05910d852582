package middleware

import (
	"net/http"
	"strconv"
	"strings"

	perr "posdash/internal/platform/errors"
	"posdash/internal/platform/logger"
	pnet "posdash/internal/platform/net"
)

const (
	// SessionHeader carries the dashboard tab id that scopes request ordering
	SessionHeader = "X-Dashboard-Session"
	// SeqHeader optionally carries the client request sequence for that session
	SeqHeader = "X-Dashboard-Seq"
)

// maxSessionLen bounds the header so it cannot be used to grow tracker keys without limit
const maxSessionLen = 128

// Session copies the dashboard session headers onto the request context
// requests without a session header pass through untouched
func Session(write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := strings.TrimSpace(r.Header.Get(SessionHeader))
			if sid == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(sid) > maxSessionLen {
				fail(w, r, write, perr.InvalidArgf("%s longer than %d", SessionHeader, maxSessionLen))
				return
			}
			var seq uint64
			if raw := strings.TrimSpace(r.Header.Get(SeqHeader)); raw != "" {
				n, err := strconv.ParseUint(raw, 10, 64)
				if err != nil {
					fail(w, r, write, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "%s must be an unsigned integer", SeqHeader))
					return
				}
				seq = n
			}
			ctx := pnet.WithSession(r.Context(), sid, seq)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func fail(w http.ResponseWriter, r *http.Request, write func(w http.ResponseWriter, status int, body any), err error) {
	status, body := pnet.Error(err, pnet.RequestID(r.Context()))
	write(w, status, body)
}
