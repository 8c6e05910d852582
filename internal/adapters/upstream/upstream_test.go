package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"posdash/internal/core/hierarchy"
	"posdash/internal/core/period"
	perr "posdash/internal/platform/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc, cache *Cache) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(Options{BaseURL: srv.URL + "/api/", Timeout: 2 * time.Second, RetryBase: time.Millisecond, Cache: cache})
	c.sleep = func(time.Duration) {}
	return c, &hits
}

func TestParams_Values(t *testing.T) {
	p := Params{
		Period:  period.ThisMonth,
		Flat:    map[string]hierarchy.Level{KeyRestaurant: hierarchy.Value("R1")},
		Product: &hierarchy.Filter{Type: "reporting_2", Value: "Hot"},
	}
	v := p.Values()
	if v.Get(KeyTimePeriod) != "thisMonth" {
		t.Fatalf("timePeriod=%q", v.Get(KeyTimePeriod))
	}
	if v.Get(KeyRestaurant) != "R1" || v.Get(KeyMachine) != "all" {
		t.Fatalf("flat=%v", v)
	}
	if v.Get(KeyProductTree) != `{"type":"reporting_2","value":"Hot"}` {
		t.Fatalf("product=%q", v.Get(KeyProductTree))
	}
	if _, ok := v[KeyStoreTree]; ok {
		t.Fatalf("store should be omitted when unset")
	}

	w := p.Without(KeyRestaurant).Values()
	if _, ok := w[KeyRestaurant]; ok {
		t.Fatalf("restaurantId should be dropped")
	}
	if p.Values().Get(KeyRestaurant) != "R1" {
		t.Fatalf("Without must not modify the receiver")
	}
}

func TestParams_UnknownPeriodNormalized(t *testing.T) {
	if got := (Params{Period: "fortnight"}).Values().Get(KeyTimePeriod); got != "last7days" {
		t.Fatalf("timePeriod=%q", got)
	}
}

func TestParseValues_RoundTrip(t *testing.T) {
	in := Params{
		Period: period.Yesterday,
		Flat:   map[string]hierarchy.Level{KeyPod: hierarchy.Value("Drive Thru")},
		Store:  &hierarchy.Filter{Type: "city", Value: "Mumbai"},
	}
	out, err := ParseValues(in.Values())
	if err != nil {
		t.Fatalf("ParseValues: %v", err)
	}
	if out.Period != period.Yesterday || out.Flag(KeyPod) != hierarchy.Value("Drive Thru") || out.Flag(KeyMachine).IsSet() {
		t.Fatalf("out=%+v", out)
	}
	if out.Store == nil || *out.Store != *in.Store || out.Product != nil {
		t.Fatalf("filters=%+v %+v", out.Store, out.Product)
	}
}

func TestPoint_DecodesValueOrSales(t *testing.T) {
	var pts []Point
	if err := json.Unmarshal([]byte(`[{"name":"a","value":1.5},{"name":9,"sales":2}]`), &pts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if pts[0] != (Point{Name: "a", Value: 1.5}) || pts[1] != (Point{Name: "9", Value: 2}) {
		t.Fatalf("pts=%+v", pts)
	}
}

func TestTransaction_FlexibleFields(t *testing.T) {
	var tx Transaction
	raw := `{"id":7,"productId":"2","timestamp":"2024-03-21T08:30:00","amount":8.99}`
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2024, 3, 21, 8, 30, 0, 0, time.Local).UnixMilli()
	if tx.ID != "7" || int64(tx.Timestamp) != want {
		t.Fatalf("tx=%+v", tx)
	}
}

func TestClient_SummaryAndQuery(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sales/summary" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"totalSales":100.5,"totalOrders":3,"avgOrderValue":33.5,"totalInvoices":3}`))
	}, nil)

	s, err := c.Summary(context.Background(), Params{Period: period.Today})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.TotalSales != 100.5 || s.TotalOrders != 3 {
		t.Fatalf("summary=%+v", s)
	}
	if gotQuery == "" {
		t.Fatalf("query not forwarded")
	}
}

func TestClient_Non2xxIsUnavailable(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, nil)
	_, err := c.Series(context.Background(), EpDailyTrend, Params{})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err=%v", err)
	}
	if e, ok := perr.As(err); !ok || e.Error() == "" {
		t.Fatalf("expected coded error, got %T", err)
	}
}

func TestClient_RetriesTransient(t *testing.T) {
	var n int32
	c, hits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&n, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"name":"x","sales":1}]`))
	}, nil)
	pts, err := c.Series(context.Background(), EpHourlyTrend, Params{})
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if len(pts) != 1 || atomic.LoadInt32(hits) != 2 {
		t.Fatalf("pts=%v hits=%d", pts, atomic.LoadInt32(hits))
	}
}

func TestClient_CallerCancelled(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte(`[]`))
	}, nil)
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Transactions(ctx, Params{}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestClient_CacheServesRepeats(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cache := NewCache(rdb, time.Minute)

	c, hits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"restaurants":[{"id":"R1","name":"Downtown Diner"}],"pods":["Front"]}`))
	}, cache)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		opts, err := c.Options(ctx)
		if err != nil {
			t.Fatalf("Options: %v", err)
		}
		if len(opts.Restaurants) != 1 || opts.Restaurants[0].ID != "R1" {
			t.Fatalf("opts=%+v", opts)
		}
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Fatalf("backend hits=%d want 1", atomic.LoadInt32(hits))
	}

	if err := cache.Bump(ctx); err != nil {
		t.Fatalf("Bump: %v", err)
	}
	if _, err := c.Options(ctx); err != nil {
		t.Fatalf("Options after bump: %v", err)
	}
	if atomic.LoadInt32(hits) != 2 {
		t.Fatalf("bump should invalidate, hits=%d", atomic.LoadInt32(hits))
	}
}

func TestCache_NilPassesThrough(t *testing.T) {
	var c *Cache
	got, err := c.Fetch(context.Background(), "k", func(context.Context) ([]byte, error) { return []byte("v"), nil })
	if err != nil || string(got) != "v" {
		t.Fatalf("got=%q err=%v", got, err)
	}
	if key, _ := c.BuildKey(context.Background(), "a", "b"); key != "posdash:upstream:a:b" {
		t.Fatalf("key=%q", key)
	}
	if c.Bump(context.Background()) != nil {
		t.Fatalf("nil bump should be a no-op")
	}
}
