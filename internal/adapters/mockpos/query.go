package mockpos

import (
	"math"
	"sort"
	"time"

	"posdash/internal/adapters/upstream"
	"posdash/internal/core/hierarchy"
	"posdash/internal/core/period"
)

// Backend answers aggregate queries over a Dataset
type Backend struct {
	data Dataset
	now  func() time.Time
}

// New returns a Backend over data; now defaults to time.Now
func New(data Dataset, now func() time.Time) *Backend {
	if now == nil {
		now = time.Now
	}
	return &Backend{data: data, now: now}
}

// Options lists filter options and hierarchy records
func (b *Backend) Options() upstream.FilterOptions {
	out := upstream.FilterOptions{
		Restaurants: make([]upstream.Named, 0, len(b.data.Restaurants)),
		Products:    make([]upstream.Named, 0, len(b.data.Products)),
		Machines:    make([]upstream.Named, 0, len(b.data.Machines)),
	}
	for _, r := range b.data.Restaurants {
		out.Restaurants = append(out.Restaurants, upstream.Named{ID: upstream.Text(r.ID), Name: r.Name})
		out.StoreHierarchy = append(out.StoreHierarchy, upstream.Row{
			"storecode": r.ID, "storename": r.Name, "state": r.State, "city": r.City,
		})
		out.OCEmails = appendUnique(out.OCEmails, r.OCEmail)
		out.OMEmails = appendUnique(out.OMEmails, r.OMEmail)
	}
	for _, p := range b.data.Products {
		out.Products = append(out.Products, upstream.Named{ID: upstream.Text(p.ID), Name: p.Name})
		row := upstream.Row{"productid": p.ID, "productname": p.Name}
		for k, v := range p.Tags {
			row[k] = v
		}
		out.ProductHierarchy = append(out.ProductHierarchy, row)
	}
	for _, m := range b.data.Machines {
		out.Machines = append(out.Machines, upstream.Named{ID: upstream.Text(m.ID), Name: m.Location})
	}
	for _, tx := range b.data.Transactions {
		out.TransactionTypes = appendUnique(out.TransactionTypes, tx.TransactionType)
		out.DeliveryChannels = appendUnique(out.DeliveryChannels, tx.DeliveryChannel)
		out.Pods = appendUnique(out.Pods, tx.Pod)
	}
	sort.Strings(out.TransactionTypes)
	sort.Strings(out.DeliveryChannels)
	sort.Strings(out.Pods)
	return out
}

// Filter returns the transactions matching p, newest first
func (b *Backend) Filter(p upstream.Params) []upstream.Transaction {
	iv := period.Resolve(p.Period, b.now())
	out := make([]upstream.Transaction, 0, len(b.data.Transactions))
	for _, tx := range b.data.Transactions {
		if !iv.Contains(time.UnixMilli(int64(tx.Timestamp))) {
			continue
		}
		if !b.matchFlat(tx, p) || !b.matchProduct(tx, p.Product) || !b.matchStore(tx, p.Store) {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

func (b *Backend) matchFlat(tx upstream.Transaction, p upstream.Params) bool {
	r, _ := b.data.restaurant(tx.RestaurantID)
	fields := map[string]string{
		upstream.KeyRestaurant:      tx.RestaurantID,
		upstream.KeyProduct:         string(tx.ProductID),
		upstream.KeyMachine:         tx.MachineID,
		upstream.KeyTransactionType: tx.TransactionType,
		upstream.KeyDeliveryChannel: tx.DeliveryChannel,
		upstream.KeyPod:             tx.Pod,
		upstream.KeyOCEmail:         r.OCEmail,
		upstream.KeyOMEmail:         r.OMEmail,
	}
	for k, have := range fields {
		if want, ok := p.Flag(k).Get(); ok && want != have {
			return false
		}
	}
	return true
}

func (b *Backend) matchProduct(tx upstream.Transaction, f *hierarchy.Filter) bool {
	if f == nil {
		return true
	}
	if f.Type == hierarchy.ProductSchema.Leaf {
		return string(tx.ProductID) == f.Value
	}
	p, ok := b.data.product(string(tx.ProductID))
	return ok && p.Tags[f.Type] == f.Value
}

func (b *Backend) matchStore(tx upstream.Transaction, f *hierarchy.Filter) bool {
	if f == nil {
		return true
	}
	r, ok := b.data.restaurant(tx.RestaurantID)
	if !ok {
		return false
	}
	switch f.Type {
	case hierarchy.StoreSchema.Leaf:
		return r.ID == f.Value
	case "state":
		return r.State == f.Value
	case "city":
		return r.City == f.Value
	default:
		return false
	}
}

// Summary totals the matching transactions
func (b *Backend) Summary(p upstream.Params) upstream.Summary {
	txs := b.Filter(p)
	var s upstream.Summary
	invoices := map[string]struct{}{}
	for _, tx := range txs {
		s.TotalSales += tx.Amount
		invoices[tx.RestaurantID+"/"+string(tx.ID)] = struct{}{}
	}
	s.TotalSales = round2(s.TotalSales)
	s.TotalOrders = float64(len(txs))
	s.TotalInvoices = float64(len(invoices))
	if len(txs) > 0 {
		s.AvgOrderValue = round2(s.TotalSales / float64(len(txs)))
	}
	return s
}

// Series groups matching transactions for a chart route
// ok is false for unknown routes
func (b *Backend) Series(path string, p upstream.Params) ([]upstream.Point, bool) {
	key, ordered, ok := b.grouper(path)
	if !ok {
		return nil, false
	}
	sums := map[string]float64{}
	var names []string
	for _, tx := range b.Filter(p) {
		k := key(tx)
		if _, seen := sums[k]; !seen {
			names = append(names, k)
		}
		sums[k] += tx.Amount
	}
	if ordered {
		sort.Strings(names)
	} else {
		sort.SliceStable(names, func(i, j int) bool { return sums[names[i]] > sums[names[j]] })
	}
	out := make([]upstream.Point, 0, len(names))
	for _, n := range names {
		out = append(out, upstream.Point{Name: n, Value: round2(sums[n])})
	}
	return out, true
}

// grouper returns the grouping key for a route and whether names sort by key
// rather than by value
func (b *Backend) grouper(path string) (func(upstream.Transaction) string, bool, bool) {
	local := func(tx upstream.Transaction) time.Time { return time.UnixMilli(int64(tx.Timestamp)) }
	switch path {
	case upstream.EpDailyTrend.Path:
		return func(tx upstream.Transaction) string { return local(tx).Format("2006-01-02") }, true, true
	case upstream.EpHourlyTrend.Path:
		return func(tx upstream.Transaction) string { return local(tx).Format("15:00") }, true, true
	case upstream.EpByRestaurant.Path:
		return func(tx upstream.Transaction) string {
			if r, ok := b.data.restaurant(tx.RestaurantID); ok {
				return r.Name
			}
			return tx.RestaurantID
		}, false, true
	case upstream.EpByProduct.Path, upstream.EpByDescription.Path:
		return func(tx upstream.Transaction) string { return tx.ProductName }, false, true
	case upstream.EpByFamilyGroup.Path:
		return func(tx upstream.Transaction) string { return tx.ItemFamilyGroup }, false, true
	case upstream.EpByDayPart.Path:
		return func(tx upstream.Transaction) string { return tx.ItemDayPart }, false, true
	case upstream.EpBySaleType.Path:
		return func(tx upstream.Transaction) string { return tx.TransactionType }, false, true
	case upstream.EpByDeliveryChannel.Path:
		return func(tx upstream.Transaction) string { return tx.DeliveryChannel }, false, true
	case upstream.EpByPod.Path:
		return func(tx upstream.Transaction) string { return tx.Pod }, false, true
	}
	return nil, false, false
}

func appendUnique(xs []string, v string) []string {
	if v == "" {
		return xs
	}
	for _, x := range xs {
		if x == v {
			return xs
		}
	}
	return append(xs, v)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
