package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"posdash/internal/adapters/mockpos"
	"posdash/internal/adapters/upstream"
	phttp "posdash/internal/platform/net/http"
	"posdash/internal/platform/store"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	backend := chi.NewRouter()
	phttp.AdaptChi(backend).Route("/api", func(r phttp.Router) {
		mockpos.Register(r, mockpos.New(mockpos.Fixtures(), func() time.Time { return mockpos.FixtureNow }))
	})
	up := httptest.NewServer(backend)
	t.Cleanup(up.Close)

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{
		Store:    &store.Store{},
		Upstream: upstream.NewClient(upstream.Options{BaseURL: up.URL + "/api"}),
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, json.RawMessage) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = res.Body.Close() }()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	_ = json.NewDecoder(res.Body).Decode(&env)
	return res.StatusCode, env.Data
}

func TestMount_WithoutPostgres(t *testing.T) {
	srv := newAPI(t)

	code, data := get(t, srv.URL+"/api/v1/meta/ready")
	if code != http.StatusOK {
		t.Fatalf("ready status=%d", code)
	}
	var ready struct {
		Status string `json:"status"`
		Checks []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"checks"`
	}
	if err := json.Unmarshal(data, &ready); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if ready.Status != "ok" {
		t.Fatalf("ready=%+v", ready)
	}
	for _, c := range ready.Checks {
		if c.Name != "upstream" && c.Status != "skipped" {
			t.Fatalf("check %s=%s", c.Name, c.Status)
		}
	}

	if code, _ := get(t, srv.URL+"/api/v1/dashboard/options"); code != http.StatusOK {
		t.Fatalf("options status=%d", code)
	}

	// views need postgres
	res, err := http.Post(srv.URL+"/api/v1/views/list", "application/json", nil)
	if err != nil {
		t.Fatalf("views: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("views status=%d", res.StatusCode)
	}
}

func TestEnsureSchema_NoBackends(t *testing.T) {
	if err := EnsureSchema(context.Background(), &store.Store{}); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := EnsureSchema(context.Background(), nil); err != nil {
		t.Fatalf("EnsureSchema nil: %v", err)
	}
}
