package upstream

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Text decodes a JSON string or number into a string
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// Row is a flat hierarchy record with every scalar rendered as text
type Row map[string]string

// UnmarshalJSON implements json.Unmarshaler
func (r *Row) UnmarshalJSON(b []byte) error {
	var raw map[string]Text
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Row, len(raw))
	for k, v := range raw {
		out[k] = string(v)
	}
	*r = out
	return nil
}

// Named is an id and display name pair
type Named struct {
	ID   Text   `json:"id"   example:"R1"`
	Name string `json:"name" example:"Downtown Diner"`
}

// FilterOptions is the /mock-data payload
type FilterOptions struct {
	Restaurants      []Named  `json:"restaurants"`
	Products         []Named  `json:"products"`
	Machines         []Named  `json:"machines"`
	TransactionTypes []string `json:"transactionTypes"`
	DeliveryChannels []string `json:"deliveryChannels"`
	Pods             []string `json:"pods"`
	OCEmails         []string `json:"ocEmails,omitempty"`
	OMEmails         []string `json:"omEmails,omitempty"`

	ProductHierarchy []Row `json:"productHierarchy,omitempty"`
	StoreHierarchy   []Row `json:"storeHierarchy,omitempty"`
}

// Summary is the /sales/summary payload
type Summary struct {
	TotalSales    float64 `json:"totalSales"    example:"1234.56"`
	TotalOrders   float64 `json:"totalOrders"   example:"42"`
	AvgOrderValue float64 `json:"avgOrderValue" example:"29.39"`
	TotalInvoices float64 `json:"totalInvoices" example:"40"`
}

// Point is one chart datum; upstream sends either value or sales
type Point struct {
	Name  string  `json:"name"  example:"2024-03-21"`
	Value float64 `json:"value" example:"120.5"`
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Point) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name  Text     `json:"name"`
		Value *float64 `json:"value"`
		Sales *float64 `json:"sales"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.Name = string(raw.Name)
	switch {
	case raw.Value != nil:
		p.Value = *raw.Value
	case raw.Sales != nil:
		p.Value = *raw.Sales
	default:
		p.Value = 0
	}
	return nil
}

// Transaction is one row of /sales
type Transaction struct {
	ID              Text    `json:"id"              example:"T1"`
	RestaurantID    string  `json:"restaurantId"    example:"R1"`
	ProductID       Text    `json:"productId"       example:"2"`
	ProductName     string  `json:"productName"     example:"Cheese Burger"`
	MachineID       string  `json:"machineId"       example:"A1"`
	TransactionType string  `json:"transactionType" example:"Dine In"`
	DeliveryChannel string  `json:"deliveryChannel" example:"Counter"`
	Pod             string  `json:"pod"             example:"Front Counter"`
	Timestamp       Millis  `json:"timestamp"`
	Amount          float64 `json:"amount"          example:"8.99"`
	Quantity        float64 `json:"quantity"        example:"1"`
	ItemFamilyGroup string  `json:"itemFamilyGroup" example:"Burgers"`
	ItemDayPart     string  `json:"itemDayPart"     example:"Breakfast"`
	StoreCode       string  `json:"storeCode,omitempty" example:"S1"`
}

// Millis is an epoch millisecond timestamp; it also accepts RFC3339 text
type Millis int64

// UnmarshalJSON implements json.Unmarshaler
func (m *Millis) UnmarshalJSON(b []byte) error {
	var t Text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	if t == "" {
		*m = 0
		return nil
	}
	if n, err := strconv.ParseFloat(string(t), 64); err == nil {
		*m = Millis(n)
		return nil
	}
	ts, err := ParseTime(string(t))
	if err != nil {
		return err
	}
	*m = Millis(ts.UnixMilli())
	return nil
}
