package hierarchy

import (
	"bytes"
	"encoding/json"
	"strings"

	perr "posdash/internal/platform/errors"
)

// LegacyAll is the string older clients and flat query params use for "no constraint"
const LegacyAll = "all"

// Level is one slot of a selection: unconstrained or a concrete value
// The zero value is unconstrained. JSON form is null or a string, so a real
// tag named "all" stays a value.
type Level struct {
	value string
	set   bool
}

// Unconstrained is the empty selection for a slot
func Unconstrained() Level { return Level{} }

// Value selects v; an empty v is unconstrained
func Value(v string) Level {
	if v == "" {
		return Level{}
	}
	return Level{value: v, set: true}
}

// ParseLegacy reads the flat parameter form where "all" or "" means unconstrained
func ParseLegacy(s string) Level {
	s = strings.TrimSpace(s)
	if s == "" || s == LegacyAll {
		return Level{}
	}
	return Value(s)
}

// IsSet reports whether the slot holds a concrete value
func (l Level) IsSet() bool { return l.set }

// Get returns the value and whether it is set
func (l Level) Get() (string, bool) { return l.value, l.set }

// Legacy renders the flat parameter form
func (l Level) Legacy() string {
	if !l.set {
		return LegacyAll
	}
	return l.value
}

// String is for logs
func (l Level) String() string {
	if !l.set {
		return "<any>"
	}
	return l.value
}

// MarshalJSON implements json.Marshaler
func (l Level) MarshalJSON() ([]byte, error) {
	if !l.set {
		return []byte("null"), nil
	}
	return json.Marshal(l.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (l *Level) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*l = Level{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "selection level must be null or a string")
	}
	*l = Value(s)
	return nil
}

// State is the per slot selection, tag levels first, leaf last
type State []Level

// NewState returns depth unconstrained slots
func NewState(depth int) State {
	if depth < 0 {
		depth = 0
	}
	return make(State, depth)
}

// Fit returns a copy of s padded or truncated to depth
func (s State) Fit(depth int) State {
	out := NewState(depth)
	copy(out, s)
	return out
}

// Select returns a new state with level set to v and every deeper slot
// unconstrained; shallower slots are kept. s is never modified.
func (s State) Select(level int, v Level) (State, error) {
	if level < 0 || level >= len(s) {
		return nil, perr.InvalidArgf("hierarchy: level %d out of range [0,%d)", level, len(s))
	}
	out := make(State, len(s))
	copy(out, s[:level])
	out[level] = v
	return out, nil
}

// SelectPath returns the state produced by clicking the last node of path,
// where path is the chain of nodes below the root (as returned by Find)
// Slots not on the path are unconstrained.
func (s State) SelectPath(path []*Node) (State, error) {
	out := NewState(len(s))
	for _, n := range path {
		if n == nil || n.Level < 0 || n.Level >= len(out) {
			return nil, perr.InvalidArgf("hierarchy: node outside selection depth %d", len(out))
		}
		out[n.Level] = nodeValue(n)
	}
	return out, nil
}

// IsSelected reports whether every node on path matches its slot in s
func (s State) IsSelected(path []*Node) bool {
	if len(path) == 0 {
		return false
	}
	for _, n := range path {
		if n == nil || n.Level < 0 || n.Level >= len(s) {
			return false
		}
		if s[n.Level] != nodeValue(n) {
			return false
		}
	}
	return true
}

// Any reports whether some slot is set
func (s State) Any() bool {
	for _, l := range s {
		if l.set {
			return true
		}
	}
	return false
}

func nodeValue(n *Node) Level {
	if n.ID != "" {
		return Value(n.ID)
	}
	return Value(n.Name)
}

// Filter is the single constraint forwarded to the aggregation backend
type Filter struct {
	Type  string `json:"type"  example:"reporting_2"`
	Value string `json:"value" example:"Hot"`
}

// Resolve picks the deepest set slot and names it with levelNames
// ok is false when nothing is set, meaning no filter
func Resolve(s State, levelNames []string) (Filter, bool) {
	n := len(s)
	if len(levelNames) < n {
		n = len(levelNames)
	}
	for i := n - 1; i >= 0; i-- {
		if v, ok := s[i].Get(); ok {
			return Filter{Type: levelNames[i], Value: v}, true
		}
	}
	return Filter{}, false
}
