package data

import "context"

// TransactionManager binds a transaction to a context. Do commits when f returns nil and
// rolls back on error or panic. A Do on a context that already carries a transaction
// joins it.
type TransactionManager interface {
	Do(ctx context.Context, f func(ctx context.Context) error) error
	Get(ctx context.Context) any
}
