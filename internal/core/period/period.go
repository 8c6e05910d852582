// Package period resolves named dashboard time periods into concrete intervals
//
// Resolution is pure: callers pass now and every boundary is computed in
// now's location. Unknown tokens resolve as Default instead of failing.
package period

import (
	"encoding/json"
	"time"

	ptime "posdash/internal/platform/time"
)

// Token names a relative date range
type Token string

// Known tokens, in the order the dashboard lists them
const (
	Today       Token = "today"
	Yesterday   Token = "yesterday"
	Last7Days   Token = "last7days"
	Last30Days  Token = "last30days"
	ThisMonth   Token = "thisMonth"
	Last3Months Token = "last3Months"
	Last6Months Token = "last6Months"
	ThisYear    Token = "thisYear"
)

// Default is used for empty and unrecognized tokens
const Default = Last7Days

var ordered = []Token{Today, Yesterday, Last7Days, Last30Days, ThisMonth, Last3Months, Last6Months, ThisYear}

var labels = map[Token]string{
	Today:       "Today",
	Yesterday:   "Yesterday",
	Last7Days:   "Last 7 Days",
	Last30Days:  "Last 30 Days",
	ThisMonth:   "This Month",
	Last3Months: "Last 3 Months",
	Last6Months: "Last 6 Months",
	ThisYear:    "This Year",
}

// All returns every known token in display order
func All() []Token {
	out := make([]Token, len(ordered))
	copy(out, ordered)
	return out
}

// Parse reports whether s is a known token
func Parse(s string) (Token, bool) {
	t := Token(s)
	_, ok := labels[t]
	return t, ok
}

// Normalize maps s to a known token, falling back to Default
func Normalize(s string) Token {
	if t, ok := Parse(s); ok {
		return t
	}
	return Default
}

// Valid reports whether t is a known token
func (t Token) Valid() bool {
	_, ok := labels[t]
	return ok
}

// Label is the human readable name of the token
func (t Token) Label() string {
	return labels[Normalize(string(t))]
}

// Interval is a resolved period
// Start is always inclusive; End is inclusive only when EndInclusive is set
type Interval struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	EndInclusive bool      `json:"end_inclusive"`
}

// Contains reports whether t falls inside the interval
func (iv Interval) Contains(t time.Time) bool {
	if t.Before(iv.Start) {
		return false
	}
	if iv.EndInclusive {
		return !t.After(iv.End)
	}
	return t.Before(iv.End)
}

// Duration is End minus Start
func (iv Interval) Duration() time.Duration { return iv.End.Sub(iv.Start) }

// MarshalJSON renders boundaries as RFC3339 in their own location
func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start        string `json:"start"`
		End          string `json:"end"`
		EndInclusive bool   `json:"end_inclusive"`
	}{iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339), iv.EndInclusive})
}

// Resolve maps a token to a concrete interval anchored on now
//
// today and yesterday are whole calendar days, half open at midnight. Every
// other token is a running window that ends at now, inclusive.
func Resolve(t Token, now time.Time) Interval {
	day := ptime.StartOfDay(now)
	running := func(start time.Time) Interval {
		return Interval{Start: start, End: now, EndInclusive: true}
	}

	switch Normalize(string(t)) {
	case Today:
		return Interval{Start: day, End: day.AddDate(0, 0, 1)}
	case Yesterday:
		return Interval{Start: day.AddDate(0, 0, -1), End: day}
	case Last30Days:
		return running(day.AddDate(0, 0, -29))
	case ThisMonth:
		return running(ptime.StartOfMonth(now, 0))
	case Last3Months:
		return running(ptime.StartOfMonth(now, -2))
	case Last6Months:
		return running(ptime.StartOfMonth(now, -5))
	case ThisYear:
		return running(time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()))
	default:
		return running(day.AddDate(0, 0, -6))
	}
}

// Option pairs a token with its label for option lists
type Option struct {
	Value Token  `json:"value" example:"last7days"`
	Label string `json:"label" example:"Last 7 Days"`
}

// Options lists every token with its label
func Options() []Option {
	out := make([]Option, 0, len(ordered))
	for _, t := range ordered {
		out = append(out, Option{Value: t, Label: labels[t]})
	}
	return out
}
