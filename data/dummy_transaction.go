package data

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DummyTransactionManager only tags the context with a transaction id. Atomicity comes
// from the in-memory repository holding its lock for each operation.
type DummyTransactionManager struct {
}

func NewDummyTransactionManager() *DummyTransactionManager {
	return &DummyTransactionManager{}
}

type dummyTransactionKey struct{}

func (d *DummyTransactionManager) Do(ctx context.Context, f func(ctx context.Context) error) error {
	if _, ok := ctx.Value(dummyTransactionKey{}).(uuid.UUID); ok {
		return f(ctx)
	}
	transactionID := uuid.New()
	logrus.Debugf("DummyTransactionManager.Do: transaction [%s]", transactionID)
	return f(context.WithValue(ctx, dummyTransactionKey{}, transactionID))
}

// Get returns the transaction id bound to ctx, or uuid.Nil outside Do.
func (d *DummyTransactionManager) Get(ctx context.Context) any {
	if tx, ok := ctx.Value(dummyTransactionKey{}).(uuid.UUID); ok {
		return tx
	}
	return uuid.Nil
}
