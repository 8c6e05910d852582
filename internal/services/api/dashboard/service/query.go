package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"posdash/internal/adapters/upstream"
	"posdash/internal/core/batchseq"
	"posdash/internal/core/hierarchy"
	"posdash/internal/core/money"
	"posdash/internal/core/pager"
	"posdash/internal/core/period"
	perr "posdash/internal/platform/errors"
	"posdash/internal/platform/logger"
	pnet "posdash/internal/platform/net"
	"posdash/internal/services/api/dashboard/domain"
	"posdash/internal/services/api/dashboard/repo"
)

type chartSpec struct {
	key   string
	title string
	ep    upstream.Endpoint
	// allRestaurants charts only run with no restaurant filter and never send one
	allRestaurants bool
}

var viewCharts = map[domain.View][]chartSpec{
	domain.ViewSales: {
		{key: "daily_sales", title: "Daily Sales", ep: upstream.EpDailyTrend},
		{key: "hourly_sales", title: "Hourly Sales", ep: upstream.EpHourlyTrend},
		{key: "sales_by_restaurant", title: "Sales by Restaurant", ep: upstream.EpByRestaurant, allRestaurants: true},
		{key: "sales_by_product", title: "Sales by Product", ep: upstream.EpByProduct},
	},
	domain.ViewProduct: {
		{key: "sales_by_product_description", title: "Sales by Product Description", ep: upstream.EpByDescription},
		{key: "sales_by_item_family_group", title: "Sales by Item Family Group", ep: upstream.EpByFamilyGroup},
		{key: "sales_by_item_day_part", title: "Sales by Item Day Part", ep: upstream.EpByDayPart},
	},
	domain.ViewStore: {
		{key: "sales_by_sale_type", title: "Sales by Sale Type", ep: upstream.EpBySaleType},
		{key: "sales_by_delivery_channel", title: "Sales by Delivery Channel", ep: upstream.EpByDeliveryChannel},
		{key: "sales_by_pod", title: "Sales by POD", ep: upstream.EpByPod},
	},
}

// Query runs one dashboard batch
//
// Summary, transactions and the view's charts are fetched concurrently and
// any failure fails the batch. With a session, a newer batch cancels this
// one and a batch that lost the race returns ErrSuperseded.
func (s *Svc) Query(ctx context.Context, in domain.QueryInput) (domain.QueryResult, error) {
	start := s.now()
	view := in.View.OrDefault()
	charts, ok := viewCharts[view]
	if !ok {
		return domain.QueryResult{}, perr.WithField(perr.InvalidArgf("unknown view %q", in.View), "view")
	}

	p, err := params(view, in)
	if err != nil {
		return domain.QueryResult{}, err
	}

	seq := in.Seq
	if seq == 0 {
		seq = pnet.SessionSeq(ctx)
	}
	tk, err := s.seq.Begin(ctx, sessionOf(ctx), seq)
	if err != nil {
		s.record(ctx, start, tk, seq, view, p, 0, err)
		return domain.QueryResult{}, err
	}

	out, err := s.fetch(tk.Context(), view, charts, p, in)
	err = tk.Finish(err)
	s.record(ctx, start, tk, tk.Seq, view, p, int64(out.Pager.Total), err)
	if err != nil {
		return domain.QueryResult{}, err
	}
	out.Seq = tk.Seq
	return out, nil
}

func (s *Svc) fetch(ctx context.Context, view domain.View, charts []chartSpec, p upstream.Params, in domain.QueryInput) (domain.QueryResult, error) {
	var (
		sum    upstream.Summary
		txs    []upstream.Transaction
		points = make([][]upstream.Point, len(charts))
		skip   = make([]bool, len(charts))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sum, err = s.Up.Summary(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.Up.Transactions(gctx, p)
		return err
	})
	for i, c := range charts {
		if c.allRestaurants && p.Flag(upstream.KeyRestaurant).IsSet() {
			skip[i] = true
			continue
		}
		cp := p
		if c.allRestaurants {
			cp = p.Without(upstream.KeyRestaurant)
		}
		g.Go(func() error {
			pts, err := s.Up.Series(gctx, c.ep, cp)
			if err != nil {
				return err
			}
			points[i] = pts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// a cancelled parent means a newer batch won, not an upstream fault
		if cause := context.Cause(ctx); cause != nil {
			return domain.QueryResult{}, cause
		}
		return domain.QueryResult{}, err
	}

	meta := pager.New(in.Page, in.Size, len(txs))
	out := domain.QueryResult{
		View:    view,
		Period:  periodInfo(p.Period, s.now()),
		Applied: domain.Applied{Filters: p.Flat, Product: p.Product, Store: p.Store},
		Cards:   cards(sum, p.Period.Label()),
		Pager:   meta,
	}
	out.Charts = make([]domain.Chart, 0, len(charts))
	for i, c := range charts {
		if skip[i] {
			continue
		}
		out.Charts = append(out.Charts, domain.Chart{Key: c.key, Title: c.title, Points: points[i]})
	}
	page := pager.Slice(txs, meta)
	out.Transactions = make([]domain.TransactionRow, 0, len(page))
	for _, tx := range page {
		out.Transactions = append(out.Transactions, row(tx))
	}
	return out, nil
}

// params maps the request onto upstream parameters
// Unknown flat keys are rejected. The product view never filters by a
// single product so its charts show the whole catalogue.
func params(view domain.View, in domain.QueryInput) (upstream.Params, error) {
	p := upstream.Params{
		Period: period.Normalize(in.TimePeriod),
		Flat:   make(map[string]hierarchy.Level, len(upstream.FlatKeys)),
	}
	known := make(map[string]bool, len(upstream.FlatKeys))
	for _, k := range upstream.FlatKeys {
		known[k] = true
		p.Flat[k] = hierarchy.Unconstrained()
	}
	for k, v := range in.Filters {
		if !known[k] {
			return upstream.Params{}, perr.WithField(perr.InvalidArgf("unknown filter %q", k), "filters")
		}
		// flat keys keep the legacy form, so "all" is no constraint here
		p.Flat[k] = hierarchy.ParseLegacy(v.Legacy())
	}
	if view == domain.ViewProduct {
		p.Flat[upstream.KeyProduct] = hierarchy.Unconstrained()
	}
	if f, ok := hierarchy.ProductSchema.Resolve(in.Product.Fit(hierarchy.ProductSchema.Depth())); ok {
		p.Product = &f
	}
	if f, ok := hierarchy.StoreSchema.Resolve(in.Store.Fit(hierarchy.StoreSchema.Depth())); ok {
		p.Store = &f
	}
	return p, nil
}

func cards(sum upstream.Summary, label string) []domain.Card {
	return []domain.Card{
		{Key: "total_sales", Title: "Total Sales", Value: sum.TotalSales, Display: money.INR(sum.TotalSales), Description: "Sales " + label},
		{Key: "total_orders", Title: "Total Orders", Value: sum.TotalOrders, Display: money.Count(int64(sum.TotalOrders)), Description: "Orders " + label},
		{Key: "avg_order_value", Title: "Average Order Value", Value: sum.AvgOrderValue, Display: money.INR(sum.AvgOrderValue), Description: "Avg. per order " + label},
		{Key: "total_gc", Title: "Total GC", Value: sum.TotalInvoices, Display: money.Count(int64(sum.TotalInvoices)), Description: "Invoices " + label},
	}
}

func row(tx upstream.Transaction) domain.TransactionRow {
	product := tx.ProductName
	if product == "" {
		product = string(tx.ProductID)
	}
	return domain.TransactionRow{
		ID:              string(tx.ID),
		Time:            time.UnixMilli(int64(tx.Timestamp)).UTC(),
		Restaurant:      tx.RestaurantID,
		Product:         product,
		Machine:         tx.MachineID,
		TransactionType: tx.TransactionType,
		DeliveryChannel: tx.DeliveryChannel,
		Pod:             tx.Pod,
		Amount:          tx.Amount,
		AmountDisplay:   money.INR(tx.Amount),
		Quantity:        tx.Quantity,
	}
}

func sessionOf(ctx context.Context) string { return pnet.SessionID(ctx) }

// record writes the batch outcome to the query log, best effort
func (s *Svc) record(ctx context.Context, start time.Time, tk *batchseq.Ticket, seq uint64, view domain.View, p upstream.Params, rows int64, err error) {
	sid := sessionOf(ctx)
	if tk != nil {
		sid = tk.Session
	}
	filters, _ := json.Marshal(domain.Applied{Filters: p.Flat, Product: p.Product, Store: p.Store})
	e := repo.QueryLog{
		At:        start,
		Session:   sid,
		Seq:       seq,
		View:      string(view),
		Period:    string(p.Period),
		Filters:   string(filters),
		Status:    repo.StatusOK,
		ElapsedMS: s.now().Sub(start).Milliseconds(),
		Rows:      rows,
	}
	switch {
	case errors.Is(err, batchseq.ErrSuperseded):
		e.Status = repo.StatusSuperseded
		e.Code = uint16(perr.CodeOf(err))
	case err != nil:
		e.Status = repo.StatusError
		e.Code = uint16(perr.CodeOf(err))
	}

	lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.logTimeout)
	defer cancel()
	if lerr := s.Repo.LogQuery(lctx, e); lerr != nil {
		logger.C(ctx).Warn().Err(lerr).Str("view", e.View).Uint64("seq", seq).Msg("dashboard query log write failed")
	}
}
