package repokit

import "context"

// Binder binds a domain repo to a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// InTx runs fn with the repo bound to one transaction; an error from fn rolls it back
func InTx[T any](ctx context.Context, db TxRunner, b Binder[T], fn func(T) error) error {
	return db.Tx(ctx, func(q Queryer) error { return fn(b.Bind(q)) })
}
