package swaggerkit

import (
	"encoding/json"
	"net/http"

	"posdash/internal/platform/logger"
)

// serveDocJSON serves the decorated doc with caching disabled
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := readDoc()
		var spec map[string]any
		if err == nil {
			err = json.Unmarshal([]byte(raw), &spec)
		}
		if err != nil {
			logger.C(r.Context()).Error().Err(err).Msg("swagger doc unreadable")
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		decorate(spec)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}
