package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "posdash/internal/platform/errors"
	pnet "posdash/internal/platform/net"
	"posdash/internal/platform/net/middleware"
	kit "posdash/internal/platform/testkit"
)

func TestRecoverJSON(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map in chart builder")
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/query", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-9"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError || rec.Header().Get("X-Request-ID") != "rid-9" {
		t.Fatalf("code=%d header=%v", rec.Code, rec.Header())
	}
	var env pnet.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != perr.ErrorCodePanic || env.RequestID != "rid-9" || env.Error != "internal error" {
		t.Fatalf("env=%+v", env)
	}
}

func TestRecoverJSON_AbortPropagates(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	v := kit.MustPanic(t, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
	if v != http.ErrAbortHandler {
		t.Fatalf("recovered %v", v)
	}
}
