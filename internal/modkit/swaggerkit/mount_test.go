package swaggerkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "posdash/internal/platform/net/http"
	"posdash/internal/platform/testkit"
)

func TestMount(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json status=%d", rec.Code)
	}
	var spec struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil || spec.Info.Title != "POS Dashboard API" {
		t.Fatalf("spec=%s err=%v", rec.Body.String(), err)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect status=%d", rec.Code)
	}
}

func TestMount_Disabled(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), false)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestDecorate(t *testing.T) {
	var spec map[string]any
	raw := `{"openapi":"3.1.0","paths":{"/dashboard/query":{"post":{"responses":{"200":{},"400":{"description":"mine"}}}}}}`
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	decorate(spec)

	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi=%v", spec["openapi"])
	}
	servers, _ := spec["servers"].([]any)
	if len(servers) != 1 || servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers=%v", spec["servers"])
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorEnvelope"]; !ok {
		t.Fatalf("error envelope schema missing")
	}
	resp := spec["paths"].(map[string]any)["/dashboard/query"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	if resp["400"].(map[string]any)["description"] != "mine" {
		t.Fatalf("declared 400 overwritten: %v", resp["400"])
	}
	if _, ok := resp["500"]; !ok {
		t.Fatalf("default 500 missing: %v", resp)
	}
}

func TestServeDocJSON_Unreadable(t *testing.T) {
	testkit.Swap(t, &readDoc, func() (string, error) { return "", errors.New("no doc") })
	rec := httptest.NewRecorder()
	serveDocJSON()(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rec.Code)
	}

	testkit.Swap(t, &readDoc, func() (string, error) { return "{not json", nil })
	rec = httptest.NewRecorder()
	serveDocJSON()(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rec.Code)
	}
}
