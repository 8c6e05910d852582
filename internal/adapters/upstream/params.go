package upstream

import (
	"encoding/json"
	"net/url"
	"time"

	"posdash/internal/core/hierarchy"
	"posdash/internal/core/period"
)

// Flat parameter keys; "all" means unconstrained
const (
	KeyRestaurant      = "restaurantId"
	KeyProduct         = "productId"
	KeyMachine         = "machineId"
	KeyTransactionType = "transactionType"
	KeyDeliveryChannel = "deliveryChannel"
	KeyPod             = "pod"
	KeyOCEmail         = "ocEmail"
	KeyOMEmail         = "omEmail"

	KeyTimePeriod  = "timePeriod"
	KeyProductTree = "product"
	KeyStoreTree   = "store"
)

// FlatKeys lists flat filters in the order they are sent
var FlatKeys = []string{KeyRestaurant, KeyProduct, KeyMachine, KeyTransactionType, KeyDeliveryChannel, KeyPod, KeyOCEmail, KeyOMEmail}

// Params is one aggregate query
type Params struct {
	Period period.Token
	Flat   map[string]hierarchy.Level

	Product *hierarchy.Filter
	Store   *hierarchy.Filter

	omit []string
}

// Flag returns the flat filter for key, unconstrained when unset
func (p Params) Flag(key string) hierarchy.Level {
	return p.Flat[key]
}

// With returns a copy with key set
func (p Params) With(key string, v hierarchy.Level) Params {
	out := p.clone()
	out.Flat[key] = v
	return out
}

// Without returns a copy that does not send key at all
func (p Params) Without(key string) Params {
	out := p.clone()
	out.Flat[key] = hierarchy.Unconstrained()
	out.omit = append(out.omit, key)
	return out
}

// Values encodes p as query parameters
// Flat keys are always sent, "all" when unconstrained, except keys dropped
// with Without. Hierarchy filters are JSON objects and omitted when unset.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set(KeyTimePeriod, string(period.Normalize(string(p.Period))))
	for _, k := range FlatKeys {
		if p.omitted(k) {
			continue
		}
		v.Set(k, p.Flat[k].Legacy())
	}
	if p.Product != nil {
		v.Set(KeyProductTree, encodeFilter(*p.Product))
	}
	if p.Store != nil {
		v.Set(KeyStoreTree, encodeFilter(*p.Store))
	}
	return v
}

// Resolve resolves p's period against now
func (p Params) Resolve(now time.Time) period.Interval {
	return period.Resolve(p.Period, now)
}

func (p Params) clone() Params {
	out := p
	out.Flat = make(map[string]hierarchy.Level, len(p.Flat)+1)
	for k, v := range p.Flat {
		out.Flat[k] = v
	}
	out.omit = append([]string(nil), p.omit...)
	return out
}

func (p Params) omitted(key string) bool {
	for _, k := range p.omit {
		if k == key {
			return true
		}
	}
	return false
}

func encodeFilter(f hierarchy.Filter) string {
	b, _ := json.Marshal(f)
	return string(b)
}

// DecodeFilter parses a product or store query parameter
func DecodeFilter(s string) (*hierarchy.Filter, error) {
	if s == "" {
		return nil, nil
	}
	var f hierarchy.Filter
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return nil, err
	}
	if f.Type == "" || f.Value == "" {
		return nil, nil
	}
	return &f, nil
}

// ParseValues is the inverse of Values, used by backends that serve these params
func ParseValues(v url.Values) (Params, error) {
	p := Params{
		Period: period.Normalize(v.Get(KeyTimePeriod)),
		Flat:   map[string]hierarchy.Level{},
	}
	for _, k := range FlatKeys {
		p.Flat[k] = hierarchy.ParseLegacy(v.Get(k))
	}
	var err error
	if p.Product, err = DecodeFilter(v.Get(KeyProductTree)); err != nil {
		return Params{}, err
	}
	if p.Store, err = DecodeFilter(v.Get(KeyStoreTree)); err != nil {
		return Params{}, err
	}
	return p, nil
}
