// Package repokit is the glue between repos and the sql seam in platform/store
package repokit

import "posdash/internal/platform/store"

type (
	Queryer    = store.RowQuerier
	TxRunner   = store.TxRunner
	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// Binder produces a repo bound to a pool or a transaction
// Services bind once to the pool and again inside each Tx.
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain constructor, handy for in memory repos in tests
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q and panics when q is nil, a wiring bug caught at boot
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind on nil Queryer")
	}
	return b.Bind(q)
}
