package data

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Querier is the part of *sql.DB and *sql.Tx used by repositories.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLTransactionManager struct {
	db *sql.DB
}

func NewSQLTransactionManager(db *sql.DB) *SQLTransactionManager {
	return &SQLTransactionManager{db: db}
}

type sqlTransactionKey struct{}

func (s *SQLTransactionManager) Do(ctx context.Context, f func(ctx context.Context) error) error {
	if _, ok := ctx.Value(sqlTransactionKey{}).(*sql.Tx); ok {
		return f(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WrapStorageError("begin", err)
	}
	transactionID := uuid.New()
	logrus.Debugf("SQLTransactionManager.Do: begin transaction [%s]", transactionID)
	newCtx := context.WithValue(ctx, sqlTransactionKey{}, tx)

	panicked := true
	defer func() {
		if panicked {
			logrus.Warnf("SQLTransactionManager.Do: rollback transaction [%s] on panic", transactionID)
			_ = tx.Rollback()
		}
	}()

	err = f(newCtx)
	panicked = false

	if err != nil {
		logrus.Debugf("SQLTransactionManager.Do: rollback transaction [%s]: %v", transactionID, err)
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return WrapStorageError("commit", err)
	}
	logrus.Debugf("SQLTransactionManager.Do: commit transaction [%s]", transactionID)
	return nil
}

// Get returns the *sql.Tx bound to ctx, or the *sql.DB outside Do. Both satisfy Querier.
func (s *SQLTransactionManager) Get(ctx context.Context) any {
	if tx, ok := ctx.Value(sqlTransactionKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}
