// Package swaggerkit serves the Swagger UI and the decorated doc.json
package swaggerkit

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	phttp "posdash/internal/platform/net/http"
)

const (
	uiRoot  = "/api/docs"
	docPath = uiRoot + "/doc.json"
)

// Mount registers the UI under /api/docs/ when enabled
// The bare /api/docs redirects so relative asset paths resolve.
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(uiRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, uiRoot+"/", http.StatusPermanentRedirect)
	})
	r.Get(docPath, serveDocJSON())
	r.Handle(uiRoot+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(docPath),
	))
}
