package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "posdash/internal/platform/net/http"
)

func TestMountProfiler(t *testing.T) {
	tests := []struct {
		prefix  string
		enabled bool
	}{
		{"/debug", true},
		{"debug/", true},
		{"/debug", false},
	}
	for _, tc := range tests {
		enabled := tc.enabled
		r := phttp.AdaptChi(chi.NewRouter())
		phttp.MountProfiler(r, tc.prefix, enabled)

		want := http.StatusNotFound
		if enabled {
			want = http.StatusOK
		}
		for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
			rec := httptest.NewRecorder()
			r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != want {
				t.Fatalf("prefix=%q enabled=%v %s: code=%d want %d", tc.prefix, enabled, path, rec.Code, want)
			}
		}
	}
}
