package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "posdash/internal/platform/net"
	"posdash/internal/platform/net/middleware"
)

func chain(h http.Handler, stack []func(http.Handler) http.Handler) http.Handler {
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	return h
}

func TestStackFor(t *testing.T) {
	var sid string
	var seq uint64
	root := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, seq = pnet.SessionID(r.Context()), pnet.SessionSeq(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}), StackFor(StackOptions{CORSOrigins: []string{"https://dash.example"}}))

	tests := []struct {
		name    string
		path    string
		session string
		want    int
	}{
		{"heartbeat short circuits", "/health", "", http.StatusOK},
		{"reaches handler", "/dashboard/query", "tab-3", http.StatusNoContent},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.session != "" {
			req.Header.Set(middleware.SessionHeader, tc.session)
			req.Header.Set(middleware.SeqHeader, "7")
		}
		rec := httptest.NewRecorder()
		root.ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Fatalf("%s: status=%d", tc.name, rec.Code)
		}
		if rec.Header().Get("X-Frame-Options") != "DENY" {
			t.Fatalf("%s: secure headers missing: %v", tc.name, rec.Header())
		}
	}
	if sid != "tab-3" || seq != 7 {
		t.Fatalf("session=%q seq=%d", sid, seq)
	}
}

func TestCommonStack_BadSequenceIsRejected(t *testing.T) {
	root := chain(http.NotFoundHandler(), CommonStack())
	req := httptest.NewRequest(http.MethodPost, "/dashboard/query", nil)
	req.Header.Set(middleware.SessionHeader, "tab-1")
	req.Header.Set(middleware.SeqHeader, "-1")
	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}
