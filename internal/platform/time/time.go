// Package time contains time related helpers
package time

import "time"

// Clock returns the current time
type Clock func() time.Time

// System is the wall clock in the host's local zone
var System Clock = time.Now

// Fixed returns a clock pinned to t
func Fixed(t time.Time) Clock { return func() time.Time { return t } }

// Or returns c, falling back to System when c is nil
func (c Clock) Or() Clock {
	if c == nil {
		return System
	}
	return c
}

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// StartOfDay truncates t to midnight in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight on the first day of t's month, offset by
// monthOffset months (negative goes back)
func StartOfMonth(t time.Time, monthOffset int) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+time.Month(monthOffset), 1, 0, 0, 0, 0, t.Location())
}
