// Package modkit wires API modules: shared deps, build options and mounting
package modkit

import "posdash/internal/modkit/module"

// Module is what the API mounts
type Module = module.Module
