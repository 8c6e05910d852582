package repokit

import (
	"context"
	"testing"

	"posdash/internal/platform/store"
	kit "posdash/internal/platform/testkit"
)

type nopQ struct{}

func (nopQ) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (nopQ) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (nopQ) QueryRow(context.Context, string, ...any) store.Row             { return nil }

type viewsRepo struct{ q Queryer }

func TestMustBind(t *testing.T) {
	b := BindFunc[viewsRepo](func(q Queryer) viewsRepo { return viewsRepo{q: q} })

	var q Queryer = nopQ{}
	if got := MustBind[viewsRepo](b, q); got.q != q {
		t.Fatalf("bound to %v", got.q)
	}
	if r := kit.MustPanic(t, func() { MustBind[viewsRepo](b, nil) }); r != "repokit: bind on nil Queryer" {
		t.Fatalf("panic=%v", r)
	}
}
