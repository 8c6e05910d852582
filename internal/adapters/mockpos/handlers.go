// Package mockpos is an in memory stand in for the sales aggregation backend
//
// It serves the same routes and query parameters as the real backend over a
// fixed fixture set, answering with bare JSON bodies.
package mockpos

import (
	stdhttp "net/http"

	"posdash/internal/adapters/upstream"
	phttp "posdash/internal/platform/net/http"
)

// Register mounts the backend routes on r
func Register(r phttp.Router, b *Backend) {
	h := &handlers{b: b}
	r.Get(upstream.EpOptions.Path, h.options)
	r.Get(upstream.EpSummary.Path, h.summary)
	r.Get(upstream.EpTransactions.Path, h.transactions)
	for path := range upstream.SeriesEndpoints {
		r.Get(path, h.series(path))
	}
}

type handlers struct{ b *Backend }

func (h *handlers) options(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
	phttp.JSON(w, stdhttp.StatusOK, h.b.Options())
}

func (h *handlers) summary(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	p, ok := params(w, r)
	if !ok {
		return
	}
	phttp.JSON(w, stdhttp.StatusOK, h.b.Summary(p))
}

func (h *handlers) transactions(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	p, ok := params(w, r)
	if !ok {
		return
	}
	phttp.JSON(w, stdhttp.StatusOK, h.b.Filter(p))
}

// trend routes answer with {name, sales} like the original backend
type trendPoint struct {
	Name  string  `json:"name"`
	Sales float64 `json:"sales"`
}

func (h *handlers) series(path string) phttp.Handler {
	trend := path == upstream.EpDailyTrend.Path || path == upstream.EpHourlyTrend.Path
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		p, ok := params(w, r)
		if !ok {
			return
		}
		pts, found := h.b.Series(path, p)
		if !found {
			phttp.JSON(w, stdhttp.StatusNotFound, map[string]string{"error": "unknown series"})
			return
		}
		if !trend {
			phttp.JSON(w, stdhttp.StatusOK, pts)
			return
		}
		out := make([]trendPoint, 0, len(pts))
		for _, pt := range pts {
			out = append(out, trendPoint{Name: pt.Name, Sales: pt.Value})
		}
		phttp.JSON(w, stdhttp.StatusOK, out)
	}
}

func params(w stdhttp.ResponseWriter, r *stdhttp.Request) (upstream.Params, bool) {
	p, err := upstream.ParseValues(r.URL.Query())
	if err != nil {
		phttp.JSON(w, stdhttp.StatusBadRequest, map[string]string{"error": "bad filter: " + err.Error()})
		return upstream.Params{}, false
	}
	return p, true
}
