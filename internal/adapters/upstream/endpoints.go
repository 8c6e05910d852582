package upstream

import (
	"context"
	"encoding/json"
	"net/url"

	perr "posdash/internal/platform/errors"
)

// Endpoint is one backend route and the noun used in its error messages
type Endpoint struct {
	Path string
	What string
}

// Backend routes
var (
	EpOptions           = Endpoint{Path: "/mock-data", What: "Filter options"}
	EpSummary           = Endpoint{Path: "/sales/summary", What: "Summary"}
	EpDailyTrend        = Endpoint{Path: "/sales/daily-trend", What: "Daily sales"}
	EpHourlyTrend       = Endpoint{Path: "/sales/hourly-trend", What: "Hourly sales"}
	EpByRestaurant      = Endpoint{Path: "/sales/by-restaurant", What: "Sales by restaurant"}
	EpByProduct         = Endpoint{Path: "/sales/by-product", What: "Sales by product"}
	EpByDescription     = Endpoint{Path: "/product/by-description", What: "Sales by product description"}
	EpByFamilyGroup     = Endpoint{Path: "/product/by-family-group", What: "Sales by item family group"}
	EpByDayPart         = Endpoint{Path: "/product/by-day-part", What: "Sales by item day part"}
	EpBySaleType        = Endpoint{Path: "/sales/by-sale-type", What: "Sales by sale type"}
	EpByDeliveryChannel = Endpoint{Path: "/sales/by-delivery-channel", What: "Sales by delivery channel"}
	EpByPod             = Endpoint{Path: "/sales/by-pod", What: "Sales by POD"}
	EpTransactions      = Endpoint{Path: "/sales", What: "Transactions"}
)

// SeriesEndpoints are the chart routes, keyed by path
var SeriesEndpoints = map[string]Endpoint{
	EpDailyTrend.Path:        EpDailyTrend,
	EpHourlyTrend.Path:       EpHourlyTrend,
	EpByRestaurant.Path:      EpByRestaurant,
	EpByProduct.Path:         EpByProduct,
	EpByDescription.Path:     EpByDescription,
	EpByFamilyGroup.Path:     EpByFamilyGroup,
	EpByDayPart.Path:         EpByDayPart,
	EpBySaleType.Path:        EpBySaleType,
	EpByDeliveryChannel.Path: EpByDeliveryChannel,
	EpByPod.Path:             EpByPod,
}

func decode[T any](ep Endpoint, b []byte) (T, error) {
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s decode failed", ep.What)
	}
	return out, nil
}

func fetch[T any](ctx context.Context, c *Client, ep Endpoint, q url.Values) (T, error) {
	b, err := c.get(ctx, ep, q)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](ep, b)
}

// Options fetches the filter option lists and hierarchy records
func (c *Client) Options(ctx context.Context) (FilterOptions, error) {
	return fetch[FilterOptions](ctx, c, EpOptions, nil)
}

// Summary fetches the headline totals
func (c *Client) Summary(ctx context.Context, p Params) (Summary, error) {
	return fetch[Summary](ctx, c, EpSummary, p.Values())
}

// Series fetches one chart's points
func (c *Client) Series(ctx context.Context, ep Endpoint, p Params) ([]Point, error) {
	pts, err := fetch[[]Point](ctx, c, ep, p.Values())
	if err != nil {
		return nil, err
	}
	if pts == nil {
		pts = []Point{}
	}
	return pts, nil
}

// Transactions fetches the transaction rows
func (c *Client) Transactions(ctx context.Context, p Params) ([]Transaction, error) {
	txs, err := fetch[[]Transaction](ctx, c, EpTransactions, p.Values())
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []Transaction{}
	}
	return txs, nil
}

// Ping checks that the backend answers the options route, bypassing the cache
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Do(ctx, EpOptions, nil)
	return err
}
