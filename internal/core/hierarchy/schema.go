// Package hierarchy builds category trees from flat tagged records and tracks
// a cascading per-level selection over them
//
// One implementation serves every hierarchy; a Schema names the tag levels
// and the leaf slot. Trees are rebuilt wholesale when the record list changes.
package hierarchy

import "strings"

// Record is a flat row with an identity, a display name and category tags
type Record struct {
	ID   string            `json:"id"`
	Name string            `json:"name"`
	Tags map[string]string `json:"tags,omitempty"`
}

// Tag returns the trimmed tag value for field
func (r Record) Tag(field string) string {
	return strings.TrimSpace(r.Tags[field])
}

// Schema describes one hierarchy: the ordered tag levels plus the leaf slot
type Schema struct {
	// Entity is the plural display name used for the root, e.g. "Products"
	Entity string
	// Levels are the ordered tag field names, one to four of them
	Levels []string
	// Leaf is the level name reported when a record itself is selected
	Leaf string

	// IDField and NameField locate identity and name in upstream rows
	IDField   string
	NameField string
}

// ProductSchema is the product category hierarchy
var ProductSchema = Schema{
	Entity:    "Products",
	Levels:    []string{"subcategory_1", "reporting_2", "piecategory_3", "reporting_id_4"},
	Leaf:      "productid",
	IDField:   "productid",
	NameField: "productname",
}

// StoreSchema is the store geography hierarchy
var StoreSchema = Schema{
	Entity:    "Stores",
	Levels:    []string{"state", "city"},
	Leaf:      "storecode",
	IDField:   "storecode",
	NameField: "storename",
}

// Names returns the level names followed by the leaf name
func (s Schema) Names() []string {
	out := make([]string, 0, len(s.Levels)+1)
	out = append(out, s.Levels...)
	return append(out, s.Leaf)
}

// Depth is the number of selectable slots, tag levels plus leaf
func (s Schema) Depth() int { return len(s.Levels) + 1 }

// NewState returns an all unconstrained selection sized for s
func (s Schema) NewState() State { return NewState(s.Depth()) }

// Build builds the tree for records using s
func (s Schema) Build(records []Record) (*Node, error) {
	return Build(s.Entity, records, s.Levels)
}

// Resolve resolves state against s's level names
func (s Schema) Resolve(state State) (Filter, bool) {
	return Resolve(state, s.Names())
}

// Record converts an upstream row into a Record using s's field names
// Fields other than the id and name fields become tags when s knows them
func (s Schema) Record(row map[string]string) Record {
	r := Record{
		ID:   strings.TrimSpace(row[s.IDField]),
		Name: strings.TrimSpace(row[s.NameField]),
		Tags: make(map[string]string, len(s.Levels)),
	}
	for _, lvl := range s.Levels {
		if v := strings.TrimSpace(row[lvl]); v != "" {
			r.Tags[lvl] = v
		}
	}
	return r
}

// Records converts a batch of upstream rows
func (s Schema) Records(rows []map[string]string) []Record { return Records(s, rows) }

// Records converts rows of any named map type using s
func Records[R ~map[string]string](s Schema, rows []R) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.Record(map[string]string(row)))
	}
	return out
}
