package infra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/reuben-baek/todo-store/data"
	"github.com/reuben-baek/todo-store/domain"
	"github.com/sirupsen/logrus"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SQLTodoRepository stores todos through database/sql on the modernc.org/sqlite driver.
type SQLTodoRepository struct {
	transactionManager data.TransactionManager
}

func NewSQLTodoRepository(transactionManager data.TransactionManager) *SQLTodoRepository {
	return &SQLTodoRepository{transactionManager: transactionManager}
}

func (r *SQLTodoRepository) querier(ctx context.Context) data.Querier {
	return r.transactionManager.Get(ctx).(data.Querier)
}

func (r *SQLTodoRepository) FindOne(ctx context.Context, id uint) (domain.Todo, error) {
	var todo domain.Todo
	err := r.querier(ctx).QueryRowContext(ctx,
		`SELECT id, title, completed FROM todos WHERE id = ?`, id,
	).Scan(&todo.ID, &todo.Title, &todo.Completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Todo{}, data.NotFoundError
		}
		return domain.Todo{}, translateSQLiteError("find one", err)
	}
	return todo, nil
}

func (r *SQLTodoRepository) FindAll(ctx context.Context) ([]domain.Todo, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, `SELECT id, title, completed FROM todos ORDER BY id`)
	if err != nil {
		return nil, translateSQLiteError("find all", err)
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		var todo domain.Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Completed); err != nil {
			return nil, translateSQLiteError("find all", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, translateSQLiteError("find all", err)
	}
	return todos, nil
}

func (r *SQLTodoRepository) Create(ctx context.Context, entity domain.Todo) (domain.Todo, error) {
	result, err := r.querier(ctx).ExecContext(ctx,
		`INSERT INTO todos (title, completed) VALUES (?, ?)`, entity.Title, entity.Completed)
	if err != nil {
		return domain.Todo{}, translateSQLiteError("create", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.Todo{}, translateSQLiteError("create", err)
	}
	created := entity.WithIdentity(uint(id))
	logrus.Debugf("SQLTodoRepository.Create: entity [%+v]", created)
	return created, nil
}

func (r *SQLTodoRepository) Update(ctx context.Context, entity domain.Todo) (domain.Todo, error) {
	result, err := r.querier(ctx).ExecContext(ctx,
		`UPDATE todos SET title = ?, completed = ? WHERE id = ?`, entity.Title, entity.Completed, entity.ID)
	if err != nil {
		return domain.Todo{}, translateSQLiteError("update", err)
	}
	if err := requireAffected(result, "update"); err != nil {
		return domain.Todo{}, err
	}
	logrus.Debugf("SQLTodoRepository.Update: entity [%+v]", entity)
	return entity, nil
}

func (r *SQLTodoRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.querier(ctx).ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return translateSQLiteError("delete", err)
	}
	if err := requireAffected(result, "delete"); err != nil {
		return err
	}
	logrus.Debugf("SQLTodoRepository.Delete: id [%d]", id)
	return nil
}

func (r *SQLTodoRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var exists bool
	err := r.querier(ctx).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM todos WHERE id = ?)`, id,
	).Scan(&exists)
	if err != nil {
		return false, translateSQLiteError("exists", err)
	}
	return exists, nil
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return translateSQLiteError(op, err)
	}
	if affected == 0 {
		return data.NotFoundError
	}
	return nil
}

// translateSQLiteError maps a CHECK violation on the title column to a ValidationError
// and wraps everything else as a StorageError.
func translateSQLiteError(op string, err error) error {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_CHECK {
		return data.NewValidationError("title", "is required")
	}
	return data.WrapStorageError(op, err)
}

var _ domain.TodoRepository = (*SQLTodoRepository)(nil)
