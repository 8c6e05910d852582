// Package testkit holds small helpers shared by package tests
package testkit

import (
	"strings"
	"testing"
)

// Swap replaces a package level seam for the duration of the test
// Tests that swap must not run in parallel with others touching the same seam.
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// MustPanic runs fn and returns what it panicked with, failing the test if it did not
func MustPanic(t *testing.T, fn func()) (v any) {
	t.Helper()
	defer func() {
		v = recover()
		if v == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// MustContain fails when haystack lacks needle, printing the haystack
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s", needle, haystack)
	}
}
