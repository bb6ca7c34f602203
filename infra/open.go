package infra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reuben-baek/todo-store/config"
	"github.com/reuben-baek/todo-store/data"
	"github.com/reuben-baek/todo-store/domain"
	"github.com/reuben-baek/todo-store/logging"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const busyTimeoutMillis = 5000

// Backend is an opened Todo store and the connection behind it.
type Backend struct {
	Store *domain.Store
	close func() error
}

// Close releases the connection. It is safe to call more than once.
func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	closeFn := b.close
	b.close = nil
	return closeFn()
}

// Open builds the store selected by cfg.Backend and applies the schema migrations.
func Open(ctx context.Context, cfg config.Config) (*Backend, error) {
	logrus.Infof("Open: backend [%s] dsn [%s]", cfg.Backend, cfg.DSN)
	switch cfg.Backend {
	case config.BackendGorm:
		return openGorm(ctx, cfg)
	case config.BackendSQL:
		return openSQL(ctx, cfg)
	case config.BackendMemory:
		transactionManager := data.NewDummyTransactionManager()
		return &Backend{
			Store: domain.NewStore(NewInMemoryTodoRepository(transactionManager), transactionManager),
			close: func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func openGorm(ctx context.Context, cfg config.Config) (*Backend, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=%d", cfg.DSN, busyTimeoutMillis)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logging.GormLogger(cfg.SlowQueryThreshold),
	})
	if err != nil {
		return nil, data.WrapStorageError("open", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, data.WrapStorageError("open", err)
	}
	if err := prepare(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	transactionManager := data.NewGormTransactionManager(db)
	return &Backend{
		Store: domain.NewStore(NewGormTodoRepository(transactionManager), transactionManager),
		close: sqlDB.Close,
	}, nil
}

func openSQL(ctx context.Context, cfg config.Config) (*Backend, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", cfg.DSN, busyTimeoutMillis)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, data.WrapStorageError("open", err)
	}
	if err := prepare(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	transactionManager := data.NewSQLTransactionManager(sqlDB)
	return &Backend{
		Store: domain.NewStore(NewSQLTodoRepository(transactionManager), transactionManager),
		close: sqlDB.Close,
	}, nil
}

// prepare pins the pool to one connection so writers queue instead of failing with
// SQLITE_BUSY, and so a ":memory:" database is shared by every call.
func prepare(ctx context.Context, sqlDB *sql.DB) error {
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		return data.WrapStorageError("ping", err)
	}
	if err := Migrate(ctx, sqlDB); err != nil {
		return data.WrapStorageError("migrate", err)
	}
	return nil
}
