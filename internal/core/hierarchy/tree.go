package hierarchy

import (
	"sort"
	"strconv"

	perr "posdash/internal/platform/errors"
)

// MaxLevels is the deepest tag hierarchy Build accepts
const MaxLevels = 4

// RootLevel is the Level of the synthetic root node
const RootLevel = -1

// Node is one node of a built hierarchy
// ID is set only on leaves created from a record. Children are keyed by
// ChildKey so a tag and a record sharing a name stay separate nodes.
type Node struct {
	Name     string           `json:"name"`
	ID       string           `json:"id,omitempty"`
	Level    int              `json:"level"`
	Children map[string]*Node `json:"children,omitempty"`
}

// ChildKey is the key of the child named name at level
func ChildKey(level int, name string) string { return strconv.Itoa(level) + ":" + name }

// Build turns records into a tree rooted at "All <entity>"
//
// Each record walks levelFields in order, skipping empty tags, creating or
// descending into the child for (level, tag). A leaf for the record is added
// last when the record has both a name and an id; the first leaf seen under a
// given name wins. Records lacking a name or id contribute no leaf.
func Build(entity string, records []Record, levelFields []string) (*Node, error) {
	if len(levelFields) == 0 || len(levelFields) > MaxLevels {
		return nil, perr.InvalidArgf("hierarchy: need 1 to %d level fields, got %d", MaxLevels, len(levelFields))
	}

	root := &Node{Name: "All " + entity, Level: RootLevel, Children: map[string]*Node{}}
	leafLevel := len(levelFields)

	for _, rec := range records {
		cur := root
		for i, field := range levelFields {
			tag := rec.Tag(field)
			if tag == "" {
				continue
			}
			key := ChildKey(i, tag)
			child, ok := cur.Children[key]
			if !ok {
				child = &Node{Name: tag, Level: i, Children: map[string]*Node{}}
				cur.Children[key] = child
			}
			cur = child
		}

		if rec.Name == "" || rec.ID == "" {
			continue
		}
		key := ChildKey(leafLevel, rec.Name)
		if _, ok := cur.Children[key]; !ok {
			cur.Children[key] = &Node{Name: rec.Name, ID: rec.ID, Level: leafLevel, Children: map[string]*Node{}}
		}
	}
	return root, nil
}

// Malformed counts records that cannot produce a leaf
func Malformed(records []Record) int {
	n := 0
	for _, r := range records {
		if r.Name == "" || r.ID == "" {
			n++
		}
	}
	return n
}

// HasChildren reports whether n opens a submenu
func (n *Node) HasChildren() bool { return n != nil && len(n.Children) > 0 }

// IsLeaf reports whether n stands for a record
func (n *Node) IsLeaf() bool { return n != nil && n.ID != "" }

// Key is n's key under its parent
func (n *Node) Key() string { return ChildKey(n.Level, n.Name) }

// Sorted returns children ordered by name, shallower levels first on ties
func (n *Node) Sorted() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Level < out[j].Level
	})
	return out
}

// Child returns the child addressed by step
// A step is either a ChildKey or a plain name. A plain name shared by
// several children picks the shallowest one.
func (n *Node) Child(step string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	if c, ok := n.Children[step]; ok {
		return c, true
	}
	var best *Node
	for _, c := range n.Children {
		if c.Name == step && (best == nil || c.Level < best.Level) {
			best = c
		}
	}
	return best, best != nil
}

// Find walks path from n, one Child step per element, and returns the nodes
// visited. The returned slice excludes n itself; ok is false if any step is
// missing.
func (n *Node) Find(path ...string) ([]*Node, bool) {
	out := make([]*Node, 0, len(path))
	cur := n
	for _, step := range path {
		next, ok := cur.Child(step)
		if !ok {
			return nil, false
		}
		out = append(out, next)
		cur = next
	}
	return out, true
}

// Leaves counts leaf nodes under n
func (n *Node) Leaves() int {
	if n == nil {
		return 0
	}
	total := 0
	if n.IsLeaf() {
		total++
	}
	for _, c := range n.Children {
		total += c.Leaves()
	}
	return total
}

// Equal reports structural equality
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Name != o.Name || n.ID != o.ID || n.Level != o.Level || len(n.Children) != len(o.Children) {
		return false
	}
	for k, c := range n.Children {
		oc, ok := o.Children[k]
		if !ok || !c.Equal(oc) {
			return false
		}
	}
	return true
}
