package time

import (
	"testing"
	"time"
)

func TestStartOfDay_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2024, 3, 21, 23, 59, 1, 5, loc)
	got := StartOfDay(in)
	want := time.Date(2024, 3, 21, 0, 0, 0, 0, loc)
	if !got.Equal(want) || got.Location() != loc {
		t.Fatalf("StartOfDay=%v want %v", got, want)
	}
}

func TestStartOfMonth_WrapsYear(t *testing.T) {
	in := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)
	got := StartOfMonth(in, -5)
	want := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("StartOfMonth=%v want %v", got, want)
	}
}

func TestClock_OrFallsBack(t *testing.T) {
	var c Clock
	if c.Or() == nil {
		t.Fatalf("nil clock did not fall back")
	}
	pinned := time.Date(2024, 3, 21, 15, 0, 0, 0, time.UTC)
	if got := Fixed(pinned).Or()(); !got.Equal(pinned) {
		t.Fatalf("Fixed clock=%v want %v", got, pinned)
	}
}

func TestPtr_ZeroIsNil(t *testing.T) {
	if Ptr(time.Time{}) != nil {
		t.Fatalf("zero time should be nil")
	}
	if Ptr(time.Unix(1, 0)) == nil {
		t.Fatalf("non zero time should not be nil")
	}
}
