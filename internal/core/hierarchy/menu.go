package hierarchy

// MenuItem is one rendered node of a cascading menu
// Path holds display names; KeyPath holds child keys and stays unambiguous
// when a tag and a record share a name.
type MenuItem struct {
	Name        string     `json:"name"`
	ID          string     `json:"id,omitempty"`
	Level       int        `json:"level"`
	Path        []string   `json:"path"`
	KeyPath     []string   `json:"key_path"`
	Selected    bool       `json:"selected"`
	HasChildren bool       `json:"has_children"`
	Children    []MenuItem `json:"children,omitempty"`
}

// Menu is the rendered hierarchy plus the filter the state resolves to
type Menu struct {
	Root   MenuItem `json:"root"`
	State  State    `json:"state"`
	Filter *Filter  `json:"filter"`
}

// Render renders root against state using schema for level names
// Children are sorted by name so the output is stable.
func Render(root *Node, schema Schema, state State) Menu {
	state = state.Fit(schema.Depth())
	m := Menu{
		Root:  renderNode(root, state, nil, nil, nil),
		State: state,
	}
	// the root is selected when nothing else is
	m.Root.Selected = !state.Any()
	if f, ok := schema.Resolve(state); ok {
		m.Filter = &f
	}
	return m
}

func renderNode(n *Node, state State, names, keys []string, chain []*Node) MenuItem {
	item := MenuItem{
		Name:        n.Name,
		ID:          n.ID,
		Level:       n.Level,
		Path:        append([]string(nil), names...),
		KeyPath:     append([]string(nil), keys...),
		Selected:    state.IsSelected(chain),
		HasChildren: n.HasChildren(),
	}
	for _, c := range n.Sorted() {
		childChain := append(append([]*Node(nil), chain...), c)
		childNames := append(append([]string(nil), names...), c.Name)
		childKeys := append(append([]string(nil), keys...), c.Key())
		item.Children = append(item.Children, renderNode(c, state, childNames, childKeys, childChain))
	}
	return item
}
