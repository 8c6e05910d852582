// Package module holds the module contract and port lookup
// It sits apart from modkit so a module's port types can import it without a cycle.
package module

import phttp "posdash/internal/platform/net/http"

// Module mounts routes and exposes a port set to its siblings
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	Ports() any
}
