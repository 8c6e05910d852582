package pager

import (
	"reflect"
	"testing"
)

func pages(bs []Button) []int {
	out := make([]int, 0, len(bs))
	for _, b := range bs {
		if b.Ellipsis {
			out = append(out, -1)
			continue
		}
		out = append(out, b.Page)
	}
	return out
}

func TestTotalPages(t *testing.T) {
	cases := map[[2]int]int{{0, 10}: 0, {1, 10}: 1, {10, 10}: 1, {11, 10}: 2, {20, 10}: 2, {5, 0}: 0}
	for in, want := range cases {
		if got := TotalPages(in[0], in[1]); got != want {
			t.Fatalf("TotalPages(%d,%d)=%d want %d", in[0], in[1], got, want)
		}
	}
}

func TestWindow_Table(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"all shown up to five", 3, 5, []int{1, 2, 3, 4, 5}},
		{"first page", 1, 10, []int{1, 2, -1, 10}},
		{"middle", 5, 10, []int{1, -1, 4, 5, 6, -1, 10}},
		{"near start has no gap", 2, 10, []int{1, 2, 3, -1, 10}},
		{"last page", 10, 10, []int{1, -1, 9, 10}},
		{"empty", 1, 0, []int{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pages(Window(tc.current, tc.total)); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Window(%d,%d)=%v want %v", tc.current, tc.total, got, tc.want)
			}
		})
	}
}

func TestNew_ClampsAndDefaults(t *testing.T) {
	m := New(0, 0, 25)
	if m.Page != 1 || m.Size != DefaultSize || m.TotalPages != 3 || m.HasPrev || !m.HasNext {
		t.Fatalf("meta=%+v", m)
	}
	m = New(9, 10, 25)
	if m.Page != 3 || m.HasNext || !m.HasPrev {
		t.Fatalf("clamped meta=%+v", m)
	}
	m = New(4, 10, 0)
	if m.Page != 1 || m.TotalPages != 0 || len(m.Buttons) != 0 {
		t.Fatalf("empty meta=%+v", m)
	}
	if New(1, 1000, 5).Size != MaxSize {
		t.Fatalf("size not capped")
	}
}

func TestSlice(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}
	got := Slice(items, New(3, 10, len(items)))
	if !reflect.DeepEqual(got, []int{20, 21, 22}) {
		t.Fatalf("page 3=%v", got)
	}
	if len(Slice([]int{}, New(1, 10, 0))) != 0 {
		t.Fatalf("empty slice expected")
	}
}
