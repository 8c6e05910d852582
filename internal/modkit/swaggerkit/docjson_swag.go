//go:build swag

package swaggerkit

import (
	"github.com/swaggo/swag/v2"

	// registers the generated doc under the "api" instance
	_ "posdash/internal/services/api/docs"
)

var readDoc = func() (string, error) { return swag.ReadDoc("api") }
