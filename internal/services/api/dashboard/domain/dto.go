// Package domain holds DTOs for dashboard http and service contracts
package domain

import (
	"time"

	"posdash/internal/adapters/upstream"
	"posdash/internal/core/hierarchy"
	"posdash/internal/core/pager"
	"posdash/internal/core/period"
)

// Kind names one of the two selectable hierarchies
type Kind string

// Hierarchy kinds
const (
	KindProduct Kind = "product"
	KindStore   Kind = "store"
)

// Schema returns the hierarchy schema for k
func (k Kind) Schema() (hierarchy.Schema, bool) {
	switch k {
	case KindProduct:
		return hierarchy.ProductSchema, true
	case KindStore:
		return hierarchy.StoreSchema, true
	}
	return hierarchy.Schema{}, false
}

// View is a dashboard tab
type View string

// Dashboard views
const (
	ViewSales   View = "sales"
	ViewProduct View = "product"
	ViewStore   View = "store"
)

// Views lists tabs in display order
func Views() []View { return []View{ViewSales, ViewProduct, ViewStore} }

// OrDefault maps the empty view to sales
func (v View) OrDefault() View {
	if v == "" {
		return ViewSales
	}
	return v
}

// Options

// OptionsResult is everything the filter bar needs to render
type OptionsResult struct {
	Restaurants      []upstream.Named `json:"restaurants"`
	Products         []upstream.Named `json:"products"`
	Machines         []upstream.Named `json:"machines"`
	TransactionTypes []string         `json:"transaction_types"`
	DeliveryChannels []string         `json:"delivery_channels"`
	Pods             []string         `json:"pods"`
	OCEmails         []string         `json:"oc_emails"`
	OMEmails         []string         `json:"om_emails"`
	Periods          []period.Option  `json:"periods"`
	Default          period.Token     `json:"default_period" example:"last7days"`
	Views            []View           `json:"views"`
}

// PeriodInfo is a token with its label and resolved window
type PeriodInfo struct {
	Token    period.Token    `json:"token"    example:"last7days"`
	Label    string          `json:"label"    example:"Last 7 Days"`
	Interval period.Interval `json:"interval"`
}

// Hierarchy menus

// HierarchyInput asks for the rendered menu of one hierarchy
type HierarchyInput struct {
	Kind  Kind            `json:"kind"  validate:"required,oneof=product store" example:"product"`
	State hierarchy.State `json:"state"`
}

// SelectInput sets one level of a selection
type SelectInput struct {
	Kind  Kind            `json:"kind"  validate:"required,oneof=product store" example:"product"`
	State hierarchy.State `json:"state"`
	Level int             `json:"level" validate:"min=0,max=4" example:"1"`
	Value hierarchy.Level `json:"value"`
}

// SelectNodeInput selects the node at a path below the root
// Steps are display names or the key_path entries of a rendered menu. An
// empty path selects the root, which clears the selection
type SelectNodeInput struct {
	Kind  Kind            `json:"kind"  validate:"required,oneof=product store" example:"product"`
	State hierarchy.State `json:"state"`
	Path  []string        `json:"path"  validate:"max=5,dive,required" example:"Beverages,Cold"`
}

// SelectResult is the state after a selection and what it resolves to
type SelectResult struct {
	State     hierarchy.State   `json:"state"`
	Filter    *hierarchy.Filter `json:"filter"`
	CloseMenu bool              `json:"close_menu"`
}

// Query batch

// QueryInput is one dashboard refresh
type QueryInput struct {
	View       View                       `json:"view,omitempty"        validate:"omitempty,oneof=sales product store" example:"sales"`
	TimePeriod string                     `json:"time_period,omitempty" validate:"omitempty,max=32" example:"last7days"`
	Filters    map[string]hierarchy.Level `json:"filters,omitempty"`
	Product    hierarchy.State            `json:"product,omitempty"`
	Store      hierarchy.State            `json:"store,omitempty"`
	Page       int                        `json:"page,omitempty"        validate:"omitempty,min=1" example:"1"`
	Size       int                        `json:"size,omitempty"        validate:"omitempty,min=1,max=100" example:"10"`
	Seq        uint64                     `json:"seq,omitempty"         example:"3"`
}

// Applied echoes the constraints the batch was computed under
type Applied struct {
	Filters map[string]hierarchy.Level `json:"filters"`
	Product *hierarchy.Filter          `json:"product"`
	Store   *hierarchy.Filter          `json:"store"`
}

// Card is one summary tile
type Card struct {
	Key         string  `json:"key"         example:"total_sales"`
	Title       string  `json:"title"       example:"Total Sales"`
	Value       float64 `json:"value"       example:"43.93"`
	Display     string  `json:"display"     example:"₹43.93"`
	Description string  `json:"description" example:"Sales Last 7 Days"`
}

// Chart is one named series
type Chart struct {
	Key    string           `json:"key"    example:"daily_sales"`
	Title  string           `json:"title"  example:"Daily Sales"`
	Points []upstream.Point `json:"points"`
}

// TransactionRow is one line of the detail table
type TransactionRow struct {
	ID              string    `json:"id"               example:"T1"`
	Time            time.Time `json:"time"`
	Restaurant      string    `json:"restaurant"       example:"R1"`
	Product         string    `json:"product"          example:"Cheese Burger"`
	Machine         string    `json:"machine"          example:"A1"`
	TransactionType string    `json:"transaction_type" example:"Dine In"`
	DeliveryChannel string    `json:"delivery_channel" example:"Counter"`
	Pod             string    `json:"pod"              example:"Front Counter"`
	Amount          float64   `json:"amount"           example:"8.99"`
	AmountDisplay   string    `json:"amount_display"   example:"₹8.99"`
	Quantity        float64   `json:"quantity"         example:"1"`
}

// QueryResult is one complete dashboard batch
type QueryResult struct {
	Seq          uint64           `json:"seq"`
	View         View             `json:"view"`
	Period       PeriodInfo       `json:"period"`
	Applied      Applied          `json:"applied"`
	Cards        []Card           `json:"cards"`
	Charts       []Chart          `json:"charts"`
	Transactions []TransactionRow `json:"transactions"`
	Pager        pager.Meta       `json:"pager"`
}

// HistoryRow is one recorded batch for the calling session
type HistoryRow struct {
	At        time.Time `json:"at"`
	Seq       uint64    `json:"seq"        example:"3"`
	View      string    `json:"view"       example:"sales"`
	Period    string    `json:"period"     example:"last7days"`
	Filters   string    `json:"filters"`
	Status    string    `json:"status"     example:"ok"`
	Code      uint16    `json:"code,omitempty"`
	ElapsedMS int64     `json:"elapsed_ms" example:"42"`
	Rows      int64     `json:"rows"       example:"20"`
}
