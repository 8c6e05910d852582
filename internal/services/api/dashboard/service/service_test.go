package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"posdash/internal/adapters/mockpos"
	"posdash/internal/adapters/upstream"
	"posdash/internal/core/batchseq"
	"posdash/internal/core/hierarchy"
	"posdash/internal/core/period"
	perr "posdash/internal/platform/errors"
	pnet "posdash/internal/platform/net"
	ptime "posdash/internal/platform/time"
	"posdash/internal/services/api/dashboard/domain"
	"posdash/internal/services/api/dashboard/repo"
)

// mockUp serves the mock backend in process and records what it was asked
type mockUp struct {
	b *mockpos.Backend

	mu     sync.Mutex
	series map[string]upstream.Params
	sums   []upstream.Params

	// summaryGate runs before each summary call when set
	summaryGate func(ctx context.Context) error
	seriesErr   error
}

func newMockUp() *mockUp {
	return &mockUp{
		b:      mockpos.New(mockpos.Fixtures(), func() time.Time { return mockpos.FixtureNow }),
		series: map[string]upstream.Params{},
	}
}

func (m *mockUp) Options(context.Context) (upstream.FilterOptions, error) { return m.b.Options(), nil }

func (m *mockUp) Summary(ctx context.Context, p upstream.Params) (upstream.Summary, error) {
	if m.summaryGate != nil {
		if err := m.summaryGate(ctx); err != nil {
			return upstream.Summary{}, err
		}
	}
	m.mu.Lock()
	m.sums = append(m.sums, p)
	m.mu.Unlock()
	return m.b.Summary(p), nil
}

func (m *mockUp) Series(_ context.Context, ep upstream.Endpoint, p upstream.Params) ([]upstream.Point, error) {
	if m.seriesErr != nil {
		return nil, m.seriesErr
	}
	m.mu.Lock()
	m.series[ep.Path] = p
	m.mu.Unlock()
	pts, _ := m.b.Series(ep.Path, p)
	return pts, nil
}

func (m *mockUp) Transactions(_ context.Context, p upstream.Params) ([]upstream.Transaction, error) {
	return m.b.Filter(p), nil
}

type memRepo struct {
	mu   sync.Mutex
	logs []repo.QueryLog
}

func (r *memRepo) EnsureSchema(context.Context) error { return nil }

func (r *memRepo) LogQuery(_ context.Context, e repo.QueryLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, e)
	return nil
}

func (r *memRepo) Recent(_ context.Context, session string, _ int) ([]repo.QueryLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repo.QueryLog
	for i := len(r.logs) - 1; i >= 0; i-- {
		if r.logs[i].Session == session {
			out = append(out, r.logs[i])
		}
	}
	return out, nil
}

func newSvc(up Upstream, r repo.Repo) *Svc {
	return New(up, r, Options{Clock: ptime.Fixed(mockpos.FixtureNow)})
}

func chartKeys(res domain.QueryResult) map[string]bool {
	out := map[string]bool{}
	for _, c := range res.Charts {
		out[c.Key] = true
	}
	return out
}

func TestQuery_ViewCharts(t *testing.T) {
	tests := []struct {
		view domain.View
		want []string
	}{
		{"", []string{"daily_sales", "hourly_sales", "sales_by_restaurant", "sales_by_product"}},
		{domain.ViewProduct, []string{"sales_by_product_description", "sales_by_item_family_group", "sales_by_item_day_part"}},
		{domain.ViewStore, []string{"sales_by_sale_type", "sales_by_delivery_channel", "sales_by_pod"}},
	}
	for _, tc := range tests {
		s := newSvc(newMockUp(), nil)
		res, err := s.Query(context.Background(), domain.QueryInput{View: tc.view, TimePeriod: "today"})
		if err != nil {
			t.Fatalf("%q: %v", tc.view, err)
		}
		keys := chartKeys(res)
		if len(res.Charts) != len(tc.want) {
			t.Fatalf("%q: charts=%v", tc.view, keys)
		}
		for _, k := range tc.want {
			if !keys[k] {
				t.Fatalf("%q: missing chart %s in %v", tc.view, k, keys)
			}
		}
	}
}

func TestQuery_SummaryCardsAndPage(t *testing.T) {
	up := newMockUp()
	s := newSvc(up, nil)
	res, err := s.Query(context.Background(), domain.QueryInput{TimePeriod: "today"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.View != domain.ViewSales || res.Period.Token != period.Today || res.Period.Label != "Today" {
		t.Fatalf("view=%s period=%+v", res.View, res.Period)
	}
	want := up.b.Summary(upstream.Params{Period: period.Today})
	if len(res.Cards) != 4 || res.Cards[0].Value != want.TotalSales || res.Cards[1].Value != 7 {
		t.Fatalf("cards=%+v want sales %v", res.Cards, want.TotalSales)
	}
	if res.Cards[0].Description != "Sales Today" || res.Cards[3].Title != "Total GC" {
		t.Fatalf("cards=%+v", res.Cards)
	}
	if res.Pager.Total != 7 || len(res.Transactions) != 7 || res.Transactions[0].ID != "T19" {
		t.Fatalf("pager=%+v rows=%d", res.Pager, len(res.Transactions))
	}
}

func TestQuery_Paging(t *testing.T) {
	s := newSvc(newMockUp(), nil)
	res, err := s.Query(context.Background(), domain.QueryInput{TimePeriod: "last7days", Page: 2, Size: 5})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Pager.Page != 2 || res.Pager.TotalPages != 4 || len(res.Transactions) != 5 {
		t.Fatalf("pager=%+v rows=%d", res.Pager, len(res.Transactions))
	}
}

func TestQuery_ByRestaurantOnlyWhenUnconstrained(t *testing.T) {
	up := newMockUp()
	s := newSvc(up, nil)
	if _, err := s.Query(context.Background(), domain.QueryInput{TimePeriod: "today"}); err != nil {
		t.Fatalf("Query: %v", err)
	}
	p, ok := up.series[upstream.EpByRestaurant.Path]
	if !ok {
		t.Fatalf("by-restaurant not fetched")
	}
	if p.Values().Has(upstream.KeyRestaurant) {
		t.Fatalf("by-restaurant sent %s", upstream.KeyRestaurant)
	}
	if v := up.series[upstream.EpDailyTrend.Path].Values().Get(upstream.KeyRestaurant); v != "all" {
		t.Fatalf("daily restaurant=%q", v)
	}

	up = newMockUp()
	s = newSvc(up, nil)
	res, err := s.Query(context.Background(), domain.QueryInput{
		TimePeriod: "today",
		Filters:    map[string]hierarchy.Level{upstream.KeyRestaurant: hierarchy.Value("R1")},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if _, ok := up.series[upstream.EpByRestaurant.Path]; ok || chartKeys(res)["sales_by_restaurant"] {
		t.Fatalf("by-restaurant fetched with a restaurant set")
	}
	if len(res.Charts) != 3 {
		t.Fatalf("charts=%d", len(res.Charts))
	}
}

func TestQuery_FlatAllIsUnconstrained(t *testing.T) {
	var in domain.QueryInput
	if err := json.Unmarshal([]byte(`{"view":"sales","time_period":"today","filters":{"restaurantId":"all"}}`), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}
	up := newMockUp()
	res, err := newSvc(up, nil).Query(context.Background(), in)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !chartKeys(res)["sales_by_restaurant"] {
		t.Fatalf("restaurantId=all dropped the by-restaurant chart")
	}
	if res.Applied.Filters[upstream.KeyRestaurant].IsSet() {
		t.Fatalf("applied reports restaurant %v", res.Applied.Filters[upstream.KeyRestaurant])
	}
	if v := up.series[upstream.EpDailyTrend.Path].Values().Get(upstream.KeyRestaurant); v != "all" {
		t.Fatalf("daily restaurant=%q", v)
	}
}

func TestQuery_ProductViewDropsProductFilter(t *testing.T) {
	up := newMockUp()
	s := newSvc(up, nil)
	res, err := s.Query(context.Background(), domain.QueryInput{
		View:       domain.ViewProduct,
		TimePeriod: "today",
		Filters:    map[string]hierarchy.Level{upstream.KeyProduct: hierarchy.Value("2")},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Applied.Filters[upstream.KeyProduct].IsSet() {
		t.Fatalf("product filter kept: %+v", res.Applied.Filters)
	}
	if got := up.sums[0].Values().Get(upstream.KeyProduct); got != "all" {
		t.Fatalf("summary productId=%q", got)
	}
}

func TestQuery_HierarchyFilters(t *testing.T) {
	up := newMockUp()
	s := newSvc(up, nil)
	product := hierarchy.ProductSchema.NewState()
	product[0] = hierarchy.Value("Beverages")
	res, err := s.Query(context.Background(), domain.QueryInput{TimePeriod: "last7days", Product: product})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Applied.Product == nil || *res.Applied.Product != (hierarchy.Filter{Type: "subcategory_1", Value: "Beverages"}) {
		t.Fatalf("applied=%+v", res.Applied.Product)
	}
	if res.Pager.Total != 4 {
		t.Fatalf("beverages rows=%d", res.Pager.Total)
	}
	if res.Applied.Store != nil {
		t.Fatalf("store=%+v", res.Applied.Store)
	}
}

func TestQuery_UnknownFilterRejected(t *testing.T) {
	s := newSvc(newMockUp(), nil)
	_, err := s.Query(context.Background(), domain.QueryInput{
		Filters: map[string]hierarchy.Level{"colour": hierarchy.Value("red")},
	})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err=%v", err)
	}
}

func TestQuery_UpstreamFailureFailsBatch(t *testing.T) {
	up := newMockUp()
	up.seriesErr = perr.Unavailablef("Hourly sales fetch failed: 500")
	r := &memRepo{}
	s := newSvc(up, r)
	_, err := s.Query(context.Background(), domain.QueryInput{})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err=%v", err)
	}
	if len(r.logs) != 1 || r.logs[0].Status != repo.StatusError || r.logs[0].Code != uint16(perr.ErrorCodeUnavailable) {
		t.Fatalf("logs=%+v", r.logs)
	}
}

func TestQuery_StaleSeqRejected(t *testing.T) {
	r := &memRepo{}
	s := newSvc(newMockUp(), r)
	ctx := pnet.WithSession(context.Background(), "s1", 0)

	res, err := s.Query(ctx, domain.QueryInput{Seq: 5})
	if err != nil || res.Seq != 5 {
		t.Fatalf("seq=%d err=%v", res.Seq, err)
	}
	_, err = s.Query(ctx, domain.QueryInput{Seq: 5})
	if !errors.Is(err, batchseq.ErrSuperseded) || !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("err=%v", err)
	}
	// header seq is used when the body has none
	res, err = s.Query(pnet.WithSession(context.Background(), "s1", 9), domain.QueryInput{})
	if err != nil || res.Seq != 9 {
		t.Fatalf("seq=%d err=%v", res.Seq, err)
	}
	if len(r.logs) != 3 || r.logs[1].Status != repo.StatusSuperseded || r.logs[0].Session != "s1" {
		t.Fatalf("logs=%+v", r.logs)
	}
}

func TestQuery_NewerBatchCancelsInFlight(t *testing.T) {
	up := newMockUp()
	started := make(chan struct{})
	var calls atomic.Int32
	up.summaryGate = func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		}
		return nil
	}
	s := newSvc(up, nil)
	ctx := pnet.WithSession(context.Background(), "s1", 0)

	done := make(chan error, 1)
	go func() {
		_, err := s.Query(ctx, domain.QueryInput{})
		done <- err
	}()
	<-started

	res, err := s.Query(ctx, domain.QueryInput{})
	if err != nil || res.Seq != 2 {
		t.Fatalf("second: seq=%d err=%v", res.Seq, err)
	}
	select {
	case err := <-done:
		if !errors.Is(err, batchseq.ErrSuperseded) {
			t.Fatalf("first err=%v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("first batch never cancelled")
	}
}

func TestQuery_NoSessionNoOrdering(t *testing.T) {
	s := newSvc(newMockUp(), nil)
	for i := 0; i < 2; i++ {
		if _, err := s.Query(context.Background(), domain.QueryInput{Seq: 1}); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
}

func TestOptionsAndPeriods(t *testing.T) {
	s := newSvc(newMockUp(), nil)
	o, err := s.Options(context.Background())
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if len(o.Restaurants) != 2 || len(o.Periods) != 8 || o.Default != period.Last7Days || len(o.Views) != 3 {
		t.Fatalf("options=%+v", o)
	}

	ps, err := s.Periods(context.Background())
	if err != nil || len(ps) != 8 {
		t.Fatalf("periods=%d err=%v", len(ps), err)
	}
	if ps[0].Token != period.Today || !ps[0].Interval.Contains(mockpos.FixtureNow) {
		t.Fatalf("today=%+v", ps[0])
	}
}

func TestHierarchy_Menu(t *testing.T) {
	s := newSvc(newMockUp(), nil)
	m, err := s.Hierarchy(context.Background(), domain.HierarchyInput{Kind: domain.KindProduct})
	if err != nil {
		t.Fatalf("Hierarchy: %v", err)
	}
	if m.Root.Name != "All Products" || !m.Root.Selected || m.Filter != nil {
		t.Fatalf("root=%+v filter=%+v", m.Root, m.Filter)
	}
	if len(m.Root.Children) != 2 || m.Root.Children[0].Name != "Beverages" {
		t.Fatalf("children=%+v", m.Root.Children)
	}

	st, err := s.Hierarchy(context.Background(), domain.HierarchyInput{Kind: domain.KindStore})
	if err != nil || st.Root.Name != "All Stores" || len(st.State) != hierarchy.StoreSchema.Depth() {
		t.Fatalf("store=%+v err=%v", st.Root, err)
	}
}

func TestSelectNode(t *testing.T) {
	s := newSvc(newMockUp(), nil)
	ctx := context.Background()
	tests := []struct {
		name      string
		path      []string
		want      *hierarchy.Filter
		closeMenu bool
	}{
		{"root clears", nil, nil, true},
		{"branch", []string{"Food", "Mains"}, &hierarchy.Filter{Type: "reporting_2", Value: "Mains"}, false},
		{"leaf", []string{"Food", "Mains", "Burgers", "BG-01", "Cheese Burger"}, &hierarchy.Filter{Type: "productid", Value: "2"}, true},
	}
	for _, tc := range tests {
		res, err := s.SelectNode(ctx, domain.SelectNodeInput{Kind: domain.KindProduct, Path: tc.path})
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if res.CloseMenu != tc.closeMenu {
			t.Fatalf("%s: close=%v", tc.name, res.CloseMenu)
		}
		if (res.Filter == nil) != (tc.want == nil) || (tc.want != nil && *res.Filter != *tc.want) {
			t.Fatalf("%s: filter=%+v want %+v", tc.name, res.Filter, tc.want)
		}
	}

	_, err := s.SelectNode(ctx, domain.SelectNodeInput{Kind: domain.KindProduct, Path: []string{"Food", "Nope"}})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestSelect(t *testing.T) {
	s := newSvc(newMockUp(), nil)
	ctx := context.Background()

	in := domain.SelectInput{Kind: domain.KindStore, Level: 0, Value: hierarchy.Value("Karnataka")}
	res, err := s.Select(ctx, in)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if res.Filter == nil || res.Filter.Type != "state" || res.CloseMenu {
		t.Fatalf("res=%+v", res)
	}

	res, err = s.Select(ctx, domain.SelectInput{Kind: domain.KindStore, State: res.State, Level: 2, Value: hierarchy.Value("R1")})
	if err != nil || !res.CloseMenu || res.Filter.Type != "storecode" {
		t.Fatalf("leaf res=%+v err=%v", res, err)
	}
	if v, _ := res.State[0].Get(); v != "Karnataka" {
		t.Fatalf("shallower slot lost: %+v", res.State)
	}

	_, err = s.Select(ctx, domain.SelectInput{Kind: domain.KindStore, Level: 3, Value: hierarchy.Value("x")})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err=%v", err)
	}
}

func TestHistory(t *testing.T) {
	r := &memRepo{}
	s := newSvc(newMockUp(), r)
	ctx := pnet.WithSession(context.Background(), "s9", 0)
	if _, err := s.Query(ctx, domain.QueryInput{View: domain.ViewStore, TimePeriod: "yesterday"}); err != nil {
		t.Fatalf("Query: %v", err)
	}
	rows, err := s.History(ctx)
	if err != nil || len(rows) != 1 {
		t.Fatalf("rows=%+v err=%v", rows, err)
	}
	if rows[0].View != "store" || rows[0].Period != "yesterday" || rows[0].Rows != 5 || rows[0].Status != repo.StatusOK {
		t.Fatalf("row=%+v", rows[0])
	}

	none, err := s.History(context.Background())
	if err != nil || len(none) != 0 {
		t.Fatalf("no session rows=%+v err=%v", none, err)
	}
}
