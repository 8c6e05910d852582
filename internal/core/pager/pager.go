// Package pager computes page metadata for the transaction table
package pager

// DefaultSize is rows per page when the caller does not ask
const DefaultSize = 10

// MaxSize caps client requested page sizes
const MaxSize = 100

// fullWindow is the page count up to which every button is shown
const fullWindow = 5

// Button is one pagination control; Ellipsis marks a gap
type Button struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// Meta describes the current page of a result set
type Meta struct {
	Page       int      `json:"page"        example:"1"`
	Size       int      `json:"size"        example:"10"`
	Total      int      `json:"total"       example:"20"`
	TotalPages int      `json:"total_pages" example:"2"`
	HasPrev    bool     `json:"has_prev"`
	HasNext    bool     `json:"has_next"`
	Buttons    []Button `json:"buttons"`
}

// TotalPages is ceil(total/size), never negative
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Window returns the page buttons for current out of totalPages
// Every page is shown up to five pages; past that only the first, the last
// and pages next to current, with an ellipsis over each gap.
func Window(current, totalPages int) []Button {
	out := make([]Button, 0, 7)
	prev := 0
	for p := 1; p <= totalPages; p++ {
		show := totalPages <= fullWindow || p == 1 || p == totalPages || abs(current-p) <= 1
		if !show {
			continue
		}
		if prev != 0 && p-prev > 1 {
			out = append(out, Button{Ellipsis: true})
		}
		out = append(out, Button{Page: p, Current: p == current})
		prev = p
	}
	return out
}

// New builds Meta for a request of page and size over total rows
// size falls back to DefaultSize; page is clamped into range
func New(page, size, total int) Meta {
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	if total < 0 {
		total = 0
	}
	tp := TotalPages(total, size)
	last := tp
	if last < 1 {
		last = 1
	}
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	return Meta{
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: tp,
		HasPrev:    page > 1,
		HasNext:    page < tp,
		Buttons:    Window(page, tp),
	}
}

// Bounds returns the half open index range of the page
func (m Meta) Bounds() (lo, hi int) {
	lo = (m.Page - 1) * m.Size
	hi = lo + m.Size
	if lo > m.Total {
		lo = m.Total
	}
	if hi > m.Total {
		hi = m.Total
	}
	return lo, hi
}

// Slice cuts the page described by m out of items
func Slice[T any](items []T, m Meta) []T {
	lo, hi := m.Bounds()
	if hi > len(items) {
		hi = len(items)
	}
	if lo > hi {
		lo = hi
	}
	return items[lo:hi]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
